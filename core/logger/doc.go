// Package logger builds the application's zap logger.
//
// Level and encoding come from Config. "debug" switches to zap's development preset;
// "console" gives colored human-readable output, which the CLI uses.
//
// WithRayID tags a logger with the request's ray id set by the rayid middleware, so every
// line logged while serving a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
