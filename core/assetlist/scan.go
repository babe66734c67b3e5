package assetlist

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// scanNamespace seeds the name-based GUIDs of scanned assets.
var scanNamespace = uuid.MustParse("6f3a1d3c-58a2-4d0e-9b7e-3c1f2a9d8e41")

// AssetIDForPath returns the stable id ScanDirectory assigns to relativePath.
func AssetIDForPath(relativePath string) AssetID {
	return NewAssetID(uuid.NewSHA1(scanNamespace, []byte(NormalizePath(relativePath))), 0)
}

// ScanDirectory builds a list from every regular file under root.
// Paths are recorded relative to root, records are ordered lexically by path.
func ScanDirectory(root string) (*List, error) {
	list := NewList()
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		hash, err := hashFile(p)
		if err != nil {
			return err
		}

		record := NewAssetFileInfo(AssetIDForPath(rel), filepath.ToSlash(rel), hash)
		record.ModificationTime = uint64(info.ModTime().Unix())
		list.Add(record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return list, nil
}

func hashFile(p string) (Hash, error) {
	f, err := os.Open(p) // #nosec G304
	if err != nil {
		return Hash{}, err
	}
	defer func() {
		_ = f.Close()
	}()
	return HashReader(f)
}
