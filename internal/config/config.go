// Package config reads command-line flags for the two binaries, falling
// back to CHESS_* environment variables.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Addr     string
	Origins  []string
	DataDir  string
	LogLevel slog.Level
}

// CLIConfig configures cmd/chess.
type CLIConfig struct {
	DataDir  string
	Slot     string
	Plain    bool
	ASCII    bool
	LogLevel slog.Level
}

// LoadServer parses args (without the program name). Flags win over the
// environment, which wins over defaults.
func LoadServer(args []string, lookup func(string) string) (ServerConfig, error) {
	env := envReader(lookup)
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", env.str("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", env.str("CHESS_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	dataDir := fs.String("data-dir", env.str("CHESS_DATA_DIR", ""), "saved games directory (default: per-user data dir)")
	level := fs.String("log-level", env.str("CHESS_LOG_LEVEL", "info"), "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return ServerConfig{}, err
	}

	lvl, err := parseLevel(*level)
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		Addr:     *addr,
		Origins:  splitList(*origins),
		DataDir:  *dataDir,
		LogLevel: lvl,
	}, nil
}

// LoadCLI parses args (without the program name) for the terminal client.
func LoadCLI(args []string, lookup func(string) string) (CLIConfig, error) {
	env := envReader(lookup)
	fs := flag.NewFlagSet("chess", flag.ContinueOnError)
	dataDir := fs.String("data-dir", env.str("CHESS_DATA_DIR", ""), "saved games directory (default: per-user data dir)")
	slot := fs.String("slot", env.str("CHESS_SLOT", "default"), "save slot used by the save and load commands")
	plain := fs.Bool("plain", env.boolean("CHESS_PLAIN", false), "line mode instead of the full-screen board")
	ascii := fs.Bool("ascii", env.boolean("CHESS_ASCII", false), "draw pieces as letters")
	level := fs.String("log-level", env.str("CHESS_LOG_LEVEL", "warn"), "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return CLIConfig{}, err
	}

	lvl, err := parseLevel(*level)
	if err != nil {
		return CLIConfig{}, err
	}
	if strings.TrimSpace(*slot) == "" {
		return CLIConfig{}, fmt.Errorf("slot must not be empty")
	}
	return CLIConfig{
		DataDir:  *dataDir,
		Slot:     *slot,
		Plain:    *plain,
		ASCII:    *ascii,
		LogLevel: lvl,
	}, nil
}

type envReader func(string) string

func (e envReader) str(key, def string) string {
	lookup := e
	if lookup == nil {
		lookup = os.Getenv
	}
	if v := lookup(key); v != "" {
		return v
	}
	return def
}

func (e envReader) boolean(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(e.str(key, ""))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	}
	return def
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
