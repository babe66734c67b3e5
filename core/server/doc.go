// Package server holds the HTTP server configuration.
//
// The start command reads the port, API key, request body limit and per-request
// comparison timeout from Config when it builds the Fiber app.
package server
