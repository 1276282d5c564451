// Package backend selects and builds the ledger store from
// configuration.
package backend

import (
	"fmt"

	"tally/internal/config"
	"tally/internal/ledger"
)

// Type identifies a store backend.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true for a known backend type.
func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources. May be nil.
type CleanupFunc func() error

// Result is the built store plus its cleanup hook.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

// Config holds what a factory needs to build a store.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:         t,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}
