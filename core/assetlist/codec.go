package assetlist

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Format identifies a serialized list encoding.
type Format string

const (
	// FormatXML is the ".assetlist" XML document format.
	FormatXML Format = "xml"
	// FormatJSON is the JSON document format.
	FormatJSON Format = "json"
)

// FileExtension is the conventional extension of XML asset lists.
const FileExtension = ".assetlist"

const (
	formatVersion = 1

	xmlRootElement  = "AssetFileInfoList"
	xmlAssetElement = "AssetFileInfo"
	xmlMetaElement  = "Metadata"
)

// FormatForPath picks the format from the locator's extension. Anything that is not
// ".json" is treated as XML.
func FormatForPath(locator string) Format {
	if strings.EqualFold(path.Ext(locator), ".json") {
		return FormatJSON
	}
	return FormatXML
}

// Encode writes list to w in the given format.
func Encode(w io.Writer, list *List, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, list)
	case FormatXML, "":
		return encodeXML(w, list)
	default:
		return fmt.Errorf("unsupported list format %q", format)
	}
}

// Decode reads a list from r in the given format.
func Decode(r io.Reader, format Format) (*List, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatXML, "":
		return decodeXML(r)
	default:
		return nil, fmt.Errorf("unsupported list format %q", format)
	}
}

func encodeXML(w io.Writer, list *List) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(xmlRootElement)
	root.CreateAttr("version", strconv.Itoa(formatVersion))

	list.Each(func(info AssetFileInfo) bool {
		el := root.CreateElement(xmlAssetElement)
		el.CreateAttr("assetId", info.AssetID.String())
		el.CreateAttr("path", info.RelativePath)
		el.CreateAttr("modificationTime", strconv.FormatUint(info.ModificationTime, 10))
		el.CreateAttr("hash", info.Hash.String())
		for _, key := range sortedKeys(info.Metadata) {
			md := el.CreateElement(xmlMetaElement)
			md.CreateAttr("key", key)
			md.CreateAttr("value", info.Metadata[key])
		}
		return true
	})

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write asset list: %w", err)
	}
	return nil
}

func decodeXML(r io.Reader) (*List, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse asset list: %w", err)
	}

	root := doc.SelectElement(xmlRootElement)
	if root == nil {
		return nil, fmt.Errorf("failed to parse asset list: missing <%s> element", xmlRootElement)
	}

	list := NewList()
	for i, el := range root.SelectElements(xmlAssetElement) {
		id, err := ParseAssetID(el.SelectAttrValue("assetId", ""))
		if err != nil {
			return nil, fmt.Errorf("asset list entry %d: %w", i, err)
		}
		hash, err := ParseHash(el.SelectAttrValue("hash", ""))
		if err != nil {
			return nil, fmt.Errorf("asset list entry %d: %w", i, err)
		}
		var modTime uint64
		if raw := el.SelectAttrValue("modificationTime", ""); raw != "" {
			modTime, err = strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("asset list entry %d: invalid modification time %q: %w", i, raw, err)
			}
		}

		info := NewAssetFileInfo(id, el.SelectAttrValue("path", ""), hash)
		info.ModificationTime = modTime
		for _, md := range el.SelectElements(xmlMetaElement) {
			if info.Metadata == nil {
				info.Metadata = make(map[string]string)
			}
			info.Metadata[md.SelectAttrValue("key", "")] = md.SelectAttrValue("value", "")
		}
		list.Add(info)
	}
	return list, nil
}

// jsonDocument is the JSON wire shape of a list.
type jsonDocument struct {
	Version int         `json:"version"`
	Assets  []JSONAsset `json:"assets"`
}

// JSONAsset is the JSON wire shape of one record.
type JSONAsset struct {
	AssetID          string            `json:"asset_id"`
	Path             string            `json:"path"`
	ModificationTime uint64            `json:"modification_time"`
	Hash             string            `json:"hash"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// ToJSONAssets converts the list to its JSON wire records.
func ToJSONAssets(list *List) []JSONAsset {
	assets := make([]JSONAsset, 0, list.Len())
	list.Each(func(info AssetFileInfo) bool {
		assets = append(assets, JSONAsset{
			AssetID:          info.AssetID.String(),
			Path:             info.RelativePath,
			ModificationTime: info.ModificationTime,
			Hash:             info.Hash.String(),
			Metadata:         info.Metadata,
		})
		return true
	})
	return assets
}

// FromJSONAssets builds a list from JSON wire records.
func FromJSONAssets(assets []JSONAsset) (*List, error) {
	list := NewList()
	for i, a := range assets {
		id, err := ParseAssetID(a.AssetID)
		if err != nil {
			return nil, fmt.Errorf("asset list entry %d: %w", i, err)
		}
		hash, err := ParseHash(a.Hash)
		if err != nil {
			return nil, fmt.Errorf("asset list entry %d: %w", i, err)
		}
		info := NewAssetFileInfo(id, a.Path, hash)
		info.ModificationTime = a.ModificationTime
		info.Metadata = a.Metadata
		list.Add(info)
	}
	return list, nil
}

func encodeJSON(w io.Writer, list *List) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonDocument{Version: formatVersion, Assets: ToJSONAssets(list)}); err != nil {
		return fmt.Errorf("failed to write asset list: %w", err)
	}
	return nil
}

func decodeJSON(r io.Reader) (*List, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse asset list: %w", err)
	}
	return FromJSONAssets(doc.Assets)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
