package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DukeRupert/tenebreuse/internal/content"
	"github.com/DukeRupert/tenebreuse/internal/email"
	"github.com/DukeRupert/tenebreuse/internal/storage"
	"github.com/DukeRupert/tenebreuse/web"
)

// NewDocumentStorage opens the configured document source.
func NewDocumentStorage(cfg *Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.DataProvider {
	case storage.ProviderR2:
		return storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			Prefix:          cfg.R2Prefix,
		}, logger)
	case storage.ProviderLocal:
		return storage.NewLocalStorage(storage.LocalConfig{BasePath: cfg.DataDir}, logger)
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataProvider)
	}
}

// NewLoader creates the document loader over the configured source.
func NewLoader(cfg *Config, logger *slog.Logger) (*content.Loader, error) {
	store, err := NewDocumentStorage(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("document storage initialization failed: %w", err)
	}
	return content.NewLoader(store, content.Options{BundleKey: cfg.DataBundle}, logger), nil
}

// TemplatesFS returns the page templates, from TEMPLATES_DIR when set.
func TemplatesFS(cfg *Config) fs.FS {
	if cfg.TemplatesDir != "" {
		return os.DirFS(cfg.TemplatesDir)
	}
	return web.Templates()
}

// StaticFS returns the static assets, from STATIC_DIR when set.
func StaticFS(cfg *Config) fs.FS {
	if cfg.StaticDir != "" {
		return os.DirFS(cfg.StaticDir)
	}
	return web.Static()
}

// NewNotifier returns the contact notifier selected by CONTACT_NOTIFY.
func NewNotifier(cfg *Config, logger *slog.Logger) (email.Notifier, error) {
	if cfg.ContactNotify != "smtp" {
		return email.NewLogNotifier(logger), nil
	}

	templates := web.EmailTemplates()
	if cfg.TemplatesDir != "" {
		templates = os.DirFS(filepath.Join(cfg.TemplatesDir, "email"))
	}
	return email.NewSMTPNotifier(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	}, cfg.ContactRecipient, templates, logger)
}
