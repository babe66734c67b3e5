package liststore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"asset-lists/core/assetlist"
)

// FileStore keeps lists as files below a root directory.
type FileStore struct {
	root          string
	allowAbsolute bool
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithAbsolutePaths lets absolute locators address files anywhere on disk. Only the
// CLI enables it; relative locators stay confined to root either way.
func WithAbsolutePaths() FileOption {
	return func(s *FileStore) { s.allowAbsolute = true }
}

// NewFileStore creates a file store. Relative locators resolve against root and may not
// leave it.
func NewFileStore(root string, opts ...FileOption) *FileStore {
	if root == "" {
		root = "."
	}
	s := &FileStore{root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) resolve(locator string) (string, error) {
	if strings.TrimSpace(locator) == "" {
		return "", fmt.Errorf("%w: empty locator", assetlist.ErrInvalidLocator)
	}
	native := filepath.FromSlash(locator)
	if filepath.IsAbs(native) || filepath.VolumeName(native) != "" {
		if !s.allowAbsolute {
			return "", fmt.Errorf("%w: absolute path %s", assetlist.ErrInvalidLocator, locator)
		}
		return filepath.Clean(native), nil
	}

	target := filepath.Join(s.root, native)
	rel, err := filepath.Rel(s.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s leaves the list root", assetlist.ErrInvalidLocator, locator)
	}
	if rel == "." {
		return "", fmt.Errorf("%w: %s names the list root", assetlist.ErrInvalidLocator, locator)
	}
	return target, nil
}

// CheckLocator implements assetlist.LocatorChecker.
func (s *FileStore) CheckLocator(locator string) error {
	_, err := s.resolve(locator)
	return err
}

// Load reads and decodes the file named by locator.
func (s *FileStore) Load(ctx context.Context, locator string) (*assetlist.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := s.resolve(locator)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target) // #nosec G304
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", locator, assetlist.ErrListNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", locator, err)
	}
	defer f.Close()

	list, err := assetlist.Decode(f, assetlist.FormatForPath(locator))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", locator, err)
	}
	return list, nil
}

// Save writes list to a temporary file next to the target and renames it into place.
func (s *FileStore) Save(ctx context.Context, locator string, list *assetlist.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(locator)
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".assetlist-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", locator, err)
	}
	defer os.Remove(tmp.Name())

	if err := assetlist.Encode(tmp, list, assetlist.FormatForPath(locator)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", locator, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", locator, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", locator, err)
	}
	return nil
}

// Locators returns every list file below root, as slash separated relative paths.
func (s *FileStore) Locators(ctx context.Context) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isListName(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.root, err)
	}
	sort.Strings(out)
	return out, nil
}

// isListName reports whether name carries an extension the codec reads.
func isListName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case assetlist.FileExtension, ".json", ".xml":
		return true
	}
	return false
}
