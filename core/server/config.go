package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, which carry comparison definitions.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
	// RequestTimeoutSeconds bounds a single comparison run started over HTTP.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"300"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// BodyLimit returns the body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// RequestTimeout returns the comparison timeout, zero meaning none.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
