package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupWritesToFileOutsideLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := Setup("prod", path)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	log.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log output in file")
	}
}

func TestSetupRejectsUnknownEnv(t *testing.T) {
	if _, err := Setup("staging", ""); err == nil {
		t.Fatalf("expected error for unknown env")
	}
}
