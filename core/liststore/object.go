package liststore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"asset-lists/core/assetlist"
	"asset-lists/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps lists as objects in an S3 compatible bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string

	mu          sync.Mutex
	bucketReady bool
}

// NewObjectStore creates an object store writing below prefix in bucket.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *ObjectStore) key(locator string) string {
	clean := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(locator, "\\", "/")), "/")
	if s.prefix == "" {
		return clean
	}
	return s.prefix + "/" + clean
}

// Load downloads and decodes the object named by locator.
func (s *ObjectStore) Load(ctx context.Context, locator string) (*assetlist.List, error) {
	key := s.key(locator)

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrapErr(locator, err)
	}
	defer obj.Close()

	// minio reports missing keys on first read, so buffer before decoding.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrapErr(locator, err)
	}

	list, err := assetlist.Decode(bytes.NewReader(data), assetlist.FormatForPath(locator))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", locator, err)
	}
	return list, nil
}

// Save encodes list and uploads it, creating the bucket on first use.
func (s *ObjectStore) Save(ctx context.Context, locator string, list *assetlist.List) error {
	format := assetlist.FormatForPath(locator)

	var buf bytes.Buffer
	if err := assetlist.Encode(&buf, list, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", locator, err)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	contentType := "application/xml"
	if format == assetlist.FormatJSON {
		contentType = "application/json"
	}

	_, err := s.client.PutObject(ctx, s.bucket, s.key(locator), &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", locator, err)
	}
	return nil
}

// Locators lists the stored lists below the prefix.
func (s *ObjectStore) Locators(ctx context.Context) ([]string, error) {
	listPrefix := ""
	if s.prefix != "" {
		listPrefix = s.prefix + "/"
	}

	var out []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, listPrefix)
		if isListName(path.Base(name)) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *ObjectStore) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucketReady {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}
	s.bucketReady = true
	return nil
}

func (s *ObjectStore) wrapErr(locator string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%s: %w", locator, assetlist.ErrListNotFound)
	}
	return fmt.Errorf("failed to download %s: %w", locator, err)
}
