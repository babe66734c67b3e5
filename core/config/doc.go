// Package config loads application settings from the environment and an optional .env file.
//
// Defaults come from the `default` struct tags of each section and are registered with
// Viper by walking the struct tree, so every key can be overridden by an environment
// variable named after its path (lists.backend -> LISTS_BACKEND).
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level and format
//   - Database: optional MySQL or SQLite connection for the db list backend
//   - Lists: default list backend, file root and object prefix
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Lists.Backend)
package config
