package app

import (
	"log/slog"

	"github.com/heartmarshall/abaevdict/internal/config"
)

// Bootstrap loads configuration from path (see config.Load), initializes the
// logger and logs the version. Every command starts here.
func Bootstrap(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.Debug("configuration loaded",
		slog.String("version", BuildVersion()),
		slog.String("corpus_dir", cfg.Corpus.Dir),
		slog.String("log_level", cfg.Log.Level),
	)

	return cfg, logger, nil
}
