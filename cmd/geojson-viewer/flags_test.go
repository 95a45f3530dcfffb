package main

import (
	"testing"

	"github.com/geodata-dev/geojson-viewer/internal/config"
)

// TestFlagDefaults verifies the flags exist with the documented defaults:
// port 8050 and debug off.
func TestFlagDefaults(t *testing.T) {
	if port == nil {
		t.Fatal("port flag not defined")
	}
	if *port != config.DefaultPort {
		t.Errorf("expected port default to be %d, got %d", config.DefaultPort, *port)
	}

	if debugMode == nil {
		t.Fatal("debug flag not defined")
	}
	if *debugMode {
		t.Error("expected debug default to be false")
	}

	if showVersion == nil {
		t.Fatal("version flag not defined")
	}
}
