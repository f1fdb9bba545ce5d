package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/taskboard/internal/board"
	"github.com/simonbystrom/taskboard/internal/config"
	"github.com/simonbystrom/taskboard/internal/engine"
	"github.com/simonbystrom/taskboard/internal/gateway"
	"github.com/simonbystrom/taskboard/internal/session"
	"github.com/simonbystrom/taskboard/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup; main only exits once it has returned.
func run() error {
	baseURL := flag.String("url", "", "backend base URL (overrides config and TASKBOARD_URL)")
	project := flag.String("project", "", "project id to open (defaults to the project picker)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfgPath := config.Path()
	if err := config.WriteDefault(cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write default config: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config %s: %w", cfgPath, err)
	}
	if *baseURL != "" {
		cfg.Server.BaseURL = *baseURL
	}
	if *project != "" {
		cfg.Server.Project = *project
	}

	logFile, err := setupLogging(config.LogPath(), *debug)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	client := gateway.New(cfg.Server.BaseURL,
		gateway.WithToken(cfg.Server.Token),
		gateway.WithRateLimit(cfg.Sync.RequestsPerSecond, cfg.Sync.Burst),
	)
	if tok := client.Token(); tok.Expired(time.Now()) {
		slog.Error("access token expired", "expires_at", tok.ExpiresAt)
		return fmt.Errorf("access token expired at %s", tok.ExpiresAt.Format(time.RFC3339))
	} else if tok.Subject != "" {
		slog.Info("authenticated", "user", tok.DisplayName())
	}

	eng := engine.New(gateway.NewBoardClient(client), board.NewStore(),
		engine.WithWriteTimeout(cfg.Sync.WriteTimeout),
		engine.WithReadTimeout(cfg.Sync.ReadTimeout),
	)
	sessPath := session.Path()
	if cfg.Server.Project == "" {
		if sess, err := session.Load(sessPath); err != nil {
			slog.Warn("could not read session", "path", sessPath, "error", err)
		} else {
			cfg.Server.Project = sess.LastProject
		}
	}
	if cfg.Server.Project != "" {
		eng.SelectProject(cfg.Server.Project)
	}
	slog.Info("taskboard starting", "url", cfg.Server.BaseURL, "project", cfg.Server.Project)

	model := ui.NewApp(cfg, eng)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, runErr := p.Run()

	if last := eng.Project(); last != "" {
		if err := session.Save(sessPath, session.State{LastProject: last}); err != nil {
			slog.Warn("could not save session", "path", sessPath, "error", err)
		}
	}

	return runErr
}

// setupLogging sends slog output to path, since the terminal belongs to
// the UI.
func setupLogging(path string, debug bool) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return f, nil
}
