package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/geodata-dev/geojson-viewer/internal/config"
	"github.com/geodata-dev/geojson-viewer/internal/monitoring"
	"github.com/geodata-dev/geojson-viewer/internal/version"
	"github.com/geodata-dev/geojson-viewer/internal/web"
)

var (
	debugMode   = flag.Bool("debug", false, "Run in debug mode")
	port        = flag.Int("port", config.DefaultPort, "Port to listen on")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func init() {
	flag.BoolVar(showVersion, "V", false, "Print version and exit (shorthand)")
}

func main() {
	// environment supplies defaults, explicit flags win
	cfg := config.FromEnv()
	*port = cfg.Port
	*debugMode = cfg.Debug
	flag.Parse()

	if *showVersion {
		fmt.Printf("geojson-viewer %s\n", version.Version)
		os.Exit(0)
	}

	if *debugMode {
		monitoring.EnableDebug()
		monitoring.Logf("debug mode enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(web.Config{
		Addr:  fmt.Sprintf(":%d", *port),
		Debug: *debugMode,
	})

	if err := server.Start(ctx); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
