package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maloquacious/fineas/internal/store"
)

func TestDBPath(t *testing.T) {
	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{name: "default", want: filepath.Join(".", store.DefaultDBFile)},
		{name: "env", env: "/tmp/env.db", want: "/tmp/env.db"},
		{name: "flag wins", flag: "flag.db", env: "/tmp/env.db", want: "flag.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDBPath, tt.env)
			if got := DBPath(tt.flag); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(EnvDBPath+"=from-dotenv.db\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv(EnvDBPath, "")
	os.Unsetenv(EnvDBPath)

	if err := LoadEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := DBPath(""); got != "from-dotenv.db" {
		t.Errorf("got %q, want %q", got, "from-dotenv.db")
	}
}

func TestLoadEnvKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(EnvDBPath+"=from-dotenv.db\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv(EnvDBPath, "from-shell.db")

	if err := LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := DBPath(""); got != "from-shell.db" {
		t.Errorf("got %q, want %q", got, "from-shell.db")
	}
}
