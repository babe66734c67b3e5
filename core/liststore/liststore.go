package liststore

import (
	"fmt"

	"asset-lists/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries the optional connections a mux can route to. Nil fields leave the
// matching backend unregistered.
type Deps struct {
	Storage storage.Client
	Bucket  string
	DB      *gorm.DB
	Logger  *zap.Logger
}

// New builds a mux with the file backend and whichever of the s3 and db backends deps
// allows. The configured default backend must be among them.
func New(cfg Config, deps Deps) (*Mux, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fallback := cfg.Backend
	if fallback == "" {
		fallback = BackendFile
	}

	mux := NewMux(fallback)
	var fileOpts []FileOption
	if cfg.AllowAbsolute {
		fileOpts = append(fileOpts, WithAbsolutePaths())
	}
	mux.Handle(BackendFile, NewFileStore(cfg.Root, fileOpts...))

	if deps.Storage != nil {
		mux.Handle(BackendS3, NewObjectStore(deps.Storage, deps.Bucket, cfg.Prefix))
	}

	if deps.DB != nil {
		store := NewDBStore(deps.DB)
		if cfg.Migrate {
			if err := store.Migrate(); err != nil {
				return nil, err
			}
		}
		mux.Handle(BackendDB, store)
	}

	if _, ok := mux.backends[fallback]; !ok {
		return nil, fmt.Errorf("default list backend %q is not available (have %v)", fallback, mux.Backends())
	}

	logger.Debug("List stores ready",
		zap.Strings("backends", mux.Backends()),
		zap.String("default", fallback),
	)
	return mux, nil
}
