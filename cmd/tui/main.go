package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/socialgraph/pkg/config"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/persistence"
	"github.com/dd0wney/socialgraph/pkg/service"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	dataDir := flag.String("data", "", "Data directory (overrides config)")
	flag.Parse()

	if err := run(*configPath, *dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
		cfg.Data.BackupDir = filepath.Join(dataDir, "backups")
	}
	format, err := persistence.ParseFormat(cfg.Data.Format)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so nothing is logged.
	logger := logging.NewNopLogger()
	store := persistence.NewStore(cfg.Data.Dir, cfg.Data.BackupDir, persistence.WithLogger(logger))
	svc := service.New(nil, service.WithLogger(logger), service.WithAnalytics(cfg.Analytics))

	res, err := store.Load(format)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("load network: %w", err)
	default:
		svc.Replace(res.Graph)
	}

	_, err = tea.NewProgram(initialModel(svc), tea.WithAltScreen()).Run()
	return err
}
