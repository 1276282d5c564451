package backend

import (
	"fmt"
	"log/slog"

	"tally/internal/ledger/memory"
	"tally/internal/storage"
)

// Factory builds stores from backend configs.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateStore builds the configured store and returns it with its
// cleanup hook.
func (f *Factory) CreateStore(cfg Config) (*Result, error) {
	switch cfg.Type {
	case SQLite:
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		f.logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil
	case Memory:
		store := memory.New()
		f.logger.Info("Initialized memory backend")
		return &Result{Store: store}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
