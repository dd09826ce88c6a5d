package main

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/DukeRupert/tenebreuse/internal"
	"github.com/DukeRupert/tenebreuse/internal/content"
	"github.com/DukeRupert/tenebreuse/internal/email"
)

type environment struct {
	cfg       *internal.Config
	logger    *slog.Logger
	loader    *content.Loader
	templates fs.FS
	static    fs.FS
	notifier  email.Notifier
}

func setup() (*environment, error) {
	cfg, err := internal.NewConfig()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	// Always text: this is a terminal tool.
	logger := internal.NewLogger(os.Stderr, "development", level)

	loader, err := internal.NewLoader(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:       cfg,
		logger:    logger,
		loader:    loader,
		templates: internal.TemplatesFS(cfg),
		static:    internal.StaticFS(cfg),
		notifier:  email.NewLogNotifier(logger),
	}, nil
}
