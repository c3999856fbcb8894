package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `name: "narrative-observer"
host: "127.0.0.1"
port: 8000
log_level: "INFO"
storage:
  db_type: "sqlite"
  db_path: "test.db"
dataset:
  path: "sample.json"
  reload_interval_seconds: 60
audit:
  retention_days: 30
`

// -----------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigLoadsAndDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Name != "narrative-observer" || cfg.Port != 8000 {
		t.Errorf("loaded %s:%d", cfg.Name, cfg.Port)
	}

	// Optional values get defaults.
	if cfg.Dataset.BaselineWindowDays != 365 {
		t.Errorf("baseline default = %d, want 365", cfg.Dataset.BaselineWindowDays)
	}
	if cfg.Audit.BufferSize != 200 {
		t.Errorf("buffer default = %d, want 200", cfg.Audit.BufferSize)
	}
	if cfg.Network.RequestTimeout != 30 {
		t.Errorf("timeout default = %d, want 30", cfg.Network.RequestTimeout)
	}
	// Explicit values survive.
	if cfg.Audit.RetentionDays != 30 {
		t.Errorf("retention = %d, want 30", cfg.Audit.RetentionDays)
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

// -----------------------------------------------------------------------------

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"privileged port", "name: x\nhost: h\nport: 80\nstorage:\n  db_type: sqlite\n  db_path: d\ndataset:\n  path: p\n"},
		{"sqlite without path", "name: x\nhost: h\nport: 8000\nstorage:\n  db_type: sqlite\ndataset:\n  path: p\n"},
		{"postgres without dsn", "name: x\nhost: h\nport: 8000\nstorage:\n  db_type: postgres\ndataset:\n  path: p\n"},
		{"no dataset source", "name: x\nhost: h\nport: 8000\nstorage:\n  db_type: sqlite\n  db_path: d\n"},
		{"empty name", "host: h\nport: 8000\nstorage:\n  db_type: sqlite\n  db_path: d\ndataset:\n  path: p\n"},
	}

	for _, tc := range cases {
		if _, err := NewConfig(writeConfig(t, tc.yaml)); err == nil {
			t.Errorf("%s: validation passed, want error", tc.name)
		}
	}
}

// -----------------------------------------------------------------------------

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := NewConfig(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Port != cfg.Port || again.Storage.DBPath != cfg.Storage.DBPath {
		t.Errorf("round trip mismatch: %+v vs %+v", again.MConfig, cfg.MConfig)
	}
}
