// Package database opens the optional SQL connection behind the db list backend.
//
// Connect wraps GORM and supports MySQL (the production target) and SQLite (local use and
// tests, including ":memory:"). Connection setup is bounded by Config.TimeoutSeconds and
// verified with a ping.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
