package cmd

import (
	"fmt"

	"asset-lists/core/config"
	"asset-lists/core/database"
	"asset-lists/core/liststore"
	"asset-lists/core/logger"
	"asset-lists/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment is the configuration, logger and list store shared by every command.
type environment struct {
	cfg   *config.Config
	log   *zap.Logger
	store *liststore.Mux
}

// loadEnvironment builds the shared environment. cli selects console logging and lets
// file locators be absolute paths.
func loadEnvironment(cli bool) (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Log
	if cli {
		logCfg.Format = "console"
	}
	logg, err := logger.New(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	// The database is optional unless it is the default backend.
	var db *gorm.DB
	if cfg.Database.Enabled || cfg.Lists.Backend == liststore.BackendDB {
		conn, err := database.Connect(cfg.Database)
		switch {
		case err == nil:
			db = conn
		case cfg.Lists.Backend == liststore.BackendDB:
			return nil, fmt.Errorf("database connection required: %w", err)
		default:
			logg.Warn("Optional database connection failed", zap.Error(err))
		}
	}

	listsCfg := cfg.Lists
	if cli {
		listsCfg.AllowAbsolute = true
	}
	store, err := liststore.New(listsCfg, liststore.Deps{
		Storage: client,
		Bucket:  cfg.Storage.Bucket,
		DB:      db,
		Logger:  logg,
	})
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, log: logg, store: store}, nil
}
