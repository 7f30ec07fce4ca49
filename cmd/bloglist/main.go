// ABOUTME: Entry point for the bloglist server and its helper commands
// ABOUTME: Subcommands: serve, init, health, stats

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/bloglist/internal/config"
	"github.com/2389/bloglist/internal/server"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _     _             _ _     _
| |__ | | ___   __ _| (_)___| |_
| '_ \| |/ _ \ / _' | | / __| __|
| |_) | | (_) | (_| | | \__ \ |_
|_.__/|_|\___/ \__, |_|_|___/\__|
               |___/
`

// getConfigPath returns the path to the bloglist config file.
// Priority: BLOGLIST_CONFIG env var > XDG_CONFIG_HOME/bloglist/config.yaml > ~/.config/bloglist/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("BLOGLIST_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "bloglist", "config.yaml")
}

// getDataPath returns the path to the bloglist data directory.
// Priority: XDG_DATA_HOME/bloglist > ~/.local/share/bloglist
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "bloglist")
}

func usage() {
	fmt.Println("Usage: bloglist <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve    Start the HTTP API server")
	fmt.Println("  init     Create a new config file interactively")
	fmt.Println("  health   Check server health")
	fmt.Println("  stats    Print like and author statistics")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit(os.Stdin)
	case "health":
		err = runHealth(ctx)
	case "stats":
		err = runStats(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	if cfg.Metrics.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Metrics:   %s\n", cfg.Metrics.Path)
	}
	if cfg.Testing.EnableReset {
		yellow.Println("    ! POST /testing/reset is enabled")
	}
	fmt.Println()

	logger.Info("starting bloglist",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"version", version,
	)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx)
}
