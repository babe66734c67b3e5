// Package liststore persists asset lists.
//
// Three backends implement assetlist.Store:
//
//   - FileStore: ".assetlist" (XML) or ".json" files below a root directory.
//   - ObjectStore: objects in an S3 or MinIO bucket, through core/storage.
//   - DBStore: the asset_lists and asset_list_entries tables, through gorm.
//
// Mux dispatches on the locator scheme ("file://", "s3://", "db://"); locators without a
// scheme go to the configured default backend. New wires a Mux from configuration.
//
// # Usage
//
//	store, err := liststore.New(cfg.Lists, liststore.Deps{Storage: client, Bucket: cfg.Storage.Bucket})
//	list, err := store.Load(ctx, "s3://builds/1042.assetlist")
package liststore
