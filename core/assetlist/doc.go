// Package assetlist provides the in-memory representation of asset file info lists.
//
// An asset file info list is an ordered collection of records, one per tracked asset,
// keyed by AssetID. Each record carries the asset's relative path, a content hash and
// opaque metadata that is passed through untouched.
//
// # Records
//
//   - AssetID: GUID plus sub index, printed as "{GUID}:sub".
//   - Hash: fixed-size content fingerprint, compared byte-wise.
//   - AssetFileInfo: one record; paths are stored lowercase with forward slashes.
//
// # Lists
//
// List keeps insertion order and guarantees that an AssetID appears at most once.
// Adding a record whose id is already present replaces the earlier record in place.
//
// # Persistence
//
// Lists are read and written through the Store interface. Encode and Decode implement the
// on-disk formats (XML ".assetlist" and JSON); concrete stores live in core/liststore.
//
// # Usage
//
//	list := assetlist.NewList(infos...)
//	var buf bytes.Buffer
//	err := assetlist.Encode(&buf, list, assetlist.FormatXML)
package assetlist
