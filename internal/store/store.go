package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	DefaultDBFile = "finances.db"
)

// CheckExists reports whether the datastore file exists in storePath.
func CheckExists(storePath string) (bool, error) {
	return CheckFile(GetDBPath(storePath))
}

// CheckFile reports whether dbPath names an existing regular file.
// A directory at dbPath is an error rather than a missing store.
func CheckFile(dbPath string) (bool, error) {
	info, err := os.Stat(dbPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to check store existence: %w", err)
	} else if info.IsDir() {
		return false, fmt.Errorf("datastore path is a directory, expected file: %s", dbPath)
	}
	return true, nil
}

// GetStorePath returns the path to the datastore directory.
// Defaults to the current working directory.
func GetStorePath() string {
	return "."
}

// GetDBPath returns the full path to the database file.
func GetDBPath(storePath string) string {
	return filepath.Join(storePath, DefaultDBFile)
}
