// Package config resolves the viewer's runtime settings from the
// environment. Command line flags are layered on top by the caller.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultPort is the listen port when nothing overrides it.
const DefaultPort = 8050

// Config holds the viewer's runtime settings.
type Config struct {
	Port  int
	Debug bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Port: DefaultPort}
}

// FromEnv loads an optional .env file from the working directory and applies
// GEOJSON_VIEWER_* variables over the defaults. Unparseable values are
// logged and ignored.
func FromEnv() Config {
	// a missing .env file is not an error
	if err := godotenv.Load(); err == nil {
		log.Print("loaded configuration from .env")
	}

	cfg := Default()
	if v := os.Getenv("GEOJSON_VIEWER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		} else {
			log.Printf("ignoring GEOJSON_VIEWER_PORT=%q: %v", v, err)
		}
	}
	if v := os.Getenv("GEOJSON_VIEWER_DEBUG"); v != "" {
		if d, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = d
		} else {
			log.Printf("ignoring GEOJSON_VIEWER_DEBUG=%q: %v", v, err)
		}
	}
	return cfg
}
