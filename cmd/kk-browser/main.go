package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	beep "github.com/gopxl/beep/v2"

	"github.com/Timtam/kk-browser/internal/browser"
	"github.com/Timtam/kk-browser/internal/catalog"
	"github.com/Timtam/kk-browser/internal/mcp"
	"github.com/Timtam/kk-browser/internal/player"
	"github.com/Timtam/kk-browser/internal/preview"
	"github.com/Timtam/kk-browser/internal/storage"
	"github.com/Timtam/kk-browser/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// outputRate is the fixed sample rate of the audio device.
const outputRate = beep.SampleRate(44100)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("Komplete Kontrol Browser MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	// Log startup info to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("kk-browser v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s", storage.BuildMode, storage.DriverName)

	// Get database path from environment or use the platform default
	dbPath := os.Getenv("KK_BROWSER_DB_PATH")
	if dbPath == "" {
		var err error
		dbPath, err = storage.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to locate browser database: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A missing database is not fatal: the server runs and reports empty
	// results, so clients can surface a useful diagnostic.
	store, err := storage.Open(dbPath)
	switch {
	case errors.Is(err, types.ErrNoDatabase):
		log.Printf("Browser database not found at %s", dbPath)
	case err != nil:
		log.Fatalf("Failed to open browser database: %v", err)
	default:
		defer func() { _ = store.Close() }()
	}

	cat := catalog.New(store != nil)
	cat.Load(ctx, store)

	br, err := browser.New(cat)
	if err != nil {
		log.Fatalf("Failed to create browser: %v", err)
	}

	// Audio output is optional too; play_preset reports an error without
	// it while browsing keeps working.
	var pl *player.Player
	if sink, err := player.NewSpeakerSink(outputRate); err != nil {
		log.Printf("Audio output unavailable: %v", err)
	} else {
		pl = player.New(sink, nil)
		defer pl.Close()
	}

	server, err := mcp.NewServer(mcp.Config{
		Catalog:  cat,
		Browser:  br,
		Resolver: preview.New(),
		Player:   pl,
		DBPath:   dbPath,
	})
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}
