// Package config resolves runtime settings for the fineas commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/maloquacious/fineas/internal/store"
)

// EnvDBPath names the environment variable that overrides the database path.
const EnvDBPath = "FINEAS_DB"

// LoadEnv reads KEY=VALUE pairs from the given files into the process
// environment. Variables already set are not overwritten and missing files
// are skipped.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// DBPath picks the database file: an explicit flag value wins, then
// FINEAS_DB, then finances.db in the default store directory.
func DBPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		return v
	}
	return store.GetDBPath(store.GetStorePath())
}
