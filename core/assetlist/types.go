package assetlist

import (
	"crypto/sha1" // #nosec G505 -- content fingerprint only
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// HashSize is the number of bytes in a content hash.
const HashSize = sha1.Size

// AssetID uniquely identifies a tracked asset.
type AssetID struct {
	// GUID identifies the source asset.
	GUID uuid.UUID
	// SubID identifies a product of the source asset.
	SubID uint32
}

// NewAssetID creates an AssetID.
func NewAssetID(guid uuid.UUID, subID uint32) AssetID {
	return AssetID{GUID: guid, SubID: subID}
}

// String returns the id as "{GUID}:sub".
func (id AssetID) String() string {
	return fmt.Sprintf("{%s}:%d", strings.ToUpper(id.GUID.String()), id.SubID)
}

// IsValid reports whether the GUID is set.
func (id AssetID) IsValid() bool {
	return id.GUID != uuid.Nil
}

// ParseAssetID parses "{GUID}:sub". Braces and the sub id are optional.
func ParseAssetID(s string) (AssetID, error) {
	s = strings.TrimSpace(s)
	guidPart, subPart := s, ""
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		guidPart, subPart = s[:idx], s[idx+1:]
	}

	guid, err := uuid.Parse(strings.Trim(guidPart, "{}"))
	if err != nil {
		return AssetID{}, fmt.Errorf("invalid asset id %q: %w", s, err)
	}

	var sub uint64
	if subPart != "" {
		sub, err = strconv.ParseUint(subPart, 10, 32)
		if err != nil {
			return AssetID{}, fmt.Errorf("invalid asset sub id %q: %w", s, err)
		}
	}

	return AssetID{GUID: guid, SubID: uint32(sub)}, nil
}

// Hash is the content fingerprint of an asset.
type Hash [HashSize]byte

// String returns the lowercase hex form.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash was never set.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// ParseHash parses a hex encoded hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return h, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(b) != HashSize {
		return h, fmt.Errorf("invalid hash %q: expected %d bytes, got %d", s, HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// HashReader computes the content hash of everything read from r.
func HashReader(r io.Reader) (Hash, error) {
	var h Hash
	hasher := sha1.New() // #nosec G401 -- content fingerprint only
	if _, err := io.Copy(hasher, r); err != nil {
		return h, err
	}
	copy(h[:], hasher.Sum(nil))
	return h, nil
}

// HashBytes computes the content hash of b.
func HashBytes(b []byte) Hash {
	return Hash(sha1.Sum(b)) // #nosec G401 -- content fingerprint only
}

// AssetFileInfo is one record of an asset file info list.
type AssetFileInfo struct {
	// AssetID is the unique asset identifier.
	AssetID AssetID
	// RelativePath is the asset path relative to the asset root, lowercase with forward slashes.
	RelativePath string
	// ModificationTime is the source modification time as recorded by the producer.
	ModificationTime uint64
	// Hash is the content fingerprint.
	Hash Hash
	// Metadata holds producer specific fields.
	Metadata map[string]string
}

// NewAssetFileInfo creates a record with a normalised path.
func NewAssetFileInfo(id AssetID, relativePath string, hash Hash) AssetFileInfo {
	return AssetFileInfo{
		AssetID:      id,
		RelativePath: NormalizePath(relativePath),
		Hash:         hash,
	}
}

// NormalizePath lowercases p and converts separators to forward slashes.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	return strings.ToLower(path.Clean(p))
}

// clone returns a copy whose metadata map is not shared with info.
func (info AssetFileInfo) clone() AssetFileInfo {
	if info.Metadata != nil {
		md := make(map[string]string, len(info.Metadata))
		for k, v := range info.Metadata {
			md[k] = v
		}
		info.Metadata = md
	}
	return info
}
