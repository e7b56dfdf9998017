// Package config reads process environment variables into a typed
// Config, following the same plain os.Getenv-plus-defaults convention
// used across the reference corpus rather than a third-party flags or
// configuration library.
package config

import (
	"os"
	"strconv"
)

// Config holds the local, non-secret settings the ambient layers around
// the core need to run: the ingest boundary's API key comparison value
// and the request-size ceiling. Neither is consumed by the core itself.
type Config struct {
	APIKey         string
	MaxRequestSize int
}

// FromEnv builds a Config from the process environment, applying defaults
// for anything unset.
func FromEnv() Config {
	return Config{
		APIKey:         envString("NOTARY_API_KEY", ""),
		MaxRequestSize: envInt("NOTARY_MAX_REQUEST_SIZE", 12288),
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
