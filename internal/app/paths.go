package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = "healthy"
	dbFileName = "healthy.db"

	EnvDB   = "HEALTHY_DB"
	EnvUser = "HEALTHY_USER"
	EnvAddr = "HEALTHY_ADDR"
)

// DefaultDBPath prefers $HEALTHY_DB and falls back to the user config dir.
func DefaultDBPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvDB)); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
