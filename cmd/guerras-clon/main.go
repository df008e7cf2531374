package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/guerrasclon/termclient/internal/config"
	"github.com/guerrasclon/termclient/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal; logs go to a file.
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{cfg.LogFile}
	logCfg.ErrorOutputPaths = []string{cfg.LogFile}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting client", zap.String("api", cfg.APIBaseURL))

	p := tea.NewProgram(tui.New(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("client crashed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
