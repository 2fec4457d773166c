// Command chess plays a two-player game of chess in the terminal, saving to
// and loading from a local database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/benbeisheim/chess/internal/cli"
	"github.com/benbeisheim/chess/internal/config"
	"github.com/benbeisheim/chess/internal/display"
	"github.com/benbeisheim/chess/internal/storage"
	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg, err := config.LoadCLI(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	// Package loggers were built from the previous default; let their records through.
	slog.SetLogLoggerLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "chess:", err)
		os.Exit(1)
	}
}

func run(cfg config.CLIConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dir, err := storage.DatabaseDir(cfg.DataDir)
	if err != nil {
		return err
	}
	store, err := storage.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Plain {
		view := display.NewTextRenderer(os.Stdout, cfg.ASCII)
		input := cli.NewLinePrompter(os.Stdin, os.Stdout)
		return cli.NewSession(nil, view, input, store, cfg.Slot).Run(ctx)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	view := display.NewScreenRenderer(screen, display.DefaultTheme, cfg.ASCII)
	input := cli.NewScreenPrompter(screen, display.PromptRow)
	return cli.NewSession(nil, view, input, store, cfg.Slot).Run(ctx)
}
