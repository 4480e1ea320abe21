package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/studybunny/internal/config"
	"github.com/jask/studybunny/internal/tui"
	"github.com/jask/studybunny/internal/wiring"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// stdout belongs to the TUI
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		log.Fatalf("mkdir log dir: %v", err)
	}
	logFile, err := tea.LogToFile(cfg.Log.Path, "studybunny")
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logFile.Close()

	app, err := wiring.Build(func() (config.Config, error) { return cfg, nil })
	if err != nil {
		log.Fatalf("wiring: %v", err)
	}
	defer app.Backend.Close()

	p := tea.NewProgram(tui.New(ctx, app.Config, app.Tracker, app.Location,
		tui.Options{Maintenance: app.Maintenance},
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
