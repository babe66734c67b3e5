// Package storage wraps the MinIO Go client for S3 compatible object storage.
//
// The Client interface covers the bucket and object calls the list store needs, so
// tests can substitute mocks.Client. NewClient works against AWS S3 and self-hosted MinIO.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
