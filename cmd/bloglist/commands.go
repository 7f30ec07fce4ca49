// ABOUTME: init, health and stats subcommands
// ABOUTME: health talks to a running server, stats reads the database directly

package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/2389/bloglist/internal/blog"
	"github.com/2389/bloglist/internal/config"
	"github.com/2389/bloglist/internal/store"
)

const clientTimeout = 10 * time.Second

// generateSecret returns 32 random bytes, base64 encoded.
func generateSecret() (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generating token secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(secretBytes), nil
}

// buildConfig renders a config file body from the given answers.
func buildConfig(cfg *config.Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	header := "# bloglist configuration\n# Generated by bloglist init\n\n"
	return append([]byte(header), body...), nil
}

func runInit(in io.Reader) error {
	reader := bufio.NewReader(in)

	fmt.Println("bloglist configuration setup")
	fmt.Println("============================")
	fmt.Println()

	defaultDbPath := filepath.Join(getDataPath(), "bloglist.db")

	outputFile := prompt(reader, "Config file path", getConfigPath())

	if _, err := os.Stat(outputFile); err == nil {
		overwrite := prompt(reader, "File exists. Overwrite?", "no")
		if !isYes(overwrite) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	secret, err := generateSecret()
	if err != nil {
		return err
	}

	cfg := &config.Config{}

	fmt.Println("\n--- Server Configuration ---")
	cfg.Server.HTTPAddr = prompt(reader, "HTTP address", config.DefaultHTTPAddr)

	fmt.Println("\n--- Database Configuration ---")
	cfg.Database.Path = prompt(reader, "SQLite database path", defaultDbPath)

	fmt.Println("\n--- Logging Configuration ---")
	cfg.Logging.Level = prompt(reader, "Log level (debug/info/warn/error)", config.DefaultLogLevel)
	cfg.Logging.Format = prompt(reader, "Log format (text/json)", config.DefaultLogFormat)

	fmt.Println("\n--- Metrics Configuration ---")
	cfg.Metrics.Enabled = isYes(prompt(reader, "Enable Prometheus metrics?", "no"))

	cfg.Auth.TokenSecret = secret
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	body, err := buildConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, body, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	dataDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("\n  ✓ Config written to %s\n", outputFile)
	green.Printf("  ✓ Data directory: %s\n", dataDir)
	fmt.Println("\nTo start the server:")
	fmt.Println("  bloglist serve")

	return nil
}

func isYes(s string) bool {
	s = strings.ToLower(s)
	return s == "yes" || s == "y"
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", question, defaultVal)
	} else {
		fmt.Printf("%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Println()
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

// get issues a GET against the configured server and returns the response.
func get(ctx context.Context, path string) (*http.Response, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, clientTimeout)
	defer cancel()

	url := fmt.Sprintf("http://%s%s", cfg.Server.HTTPAddr, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func runHealth(ctx context.Context) error {
	resp, err := get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func runStats(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	// Stats never touches tokens
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := blog.NewService(s, nil, blog.Options{}, logger, nil)

	stats, err := svc.Stats(ctx)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	printStats(os.Stdout, stats)
	return nil
}

// printStats writes a human-readable stats report.
func printStats(w io.Writer, stats *blog.Stats) {
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)

	cyan.Fprintln(w, "  Blog statistics")
	cyan.Fprintln(w, "  ---------------")
	fmt.Fprintf(w, "  Total likes:  %d\n", stats.TotalLikes)

	if fav := stats.Favorite; fav != nil {
		fmt.Fprintf(w, "  Favorite:     %s", deref(fav.Title))
		gray.Fprintf(w, " (%d likes)\n", derefInt(fav.LikeCount))
	} else {
		fmt.Fprintln(w, "  Favorite:     -")
	}

	fmt.Fprintln(w, "  Most posts:")
	if len(stats.MostPosts) == 0 {
		gray.Fprintln(w, "    none")
	}
	for _, a := range stats.MostPosts {
		fmt.Fprintf(w, "    %s", a.Author)
		gray.Fprintf(w, " (%d posts)\n", a.Posts)
	}

	fmt.Fprintln(w, "  Most likes:")
	if len(stats.MostLikes) == 0 {
		gray.Fprintln(w, "    none")
	}
	for _, a := range stats.MostLikes {
		fmt.Fprintf(w, "    %s", a.Author)
		gray.Fprintf(w, " (%d likes)\n", a.Likes)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
