package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDecodesKnownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emu1802.toml")
	contents := "debug = true\ndelay = 5\nworkers = 4\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !f.Debug || f.Delay != 5 || f.Workers != 4 {
		t.Errorf("got %+v, want {Debug:true Delay:5 Workers:4}", f)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadDefaultsUnsetFieldsToZeroValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.toml")
	if err := os.WriteFile(path, []byte("debug = true\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Delay != 0 || f.Workers != 0 {
		t.Errorf("got %+v, want Delay=0 Workers=0", f)
	}
}
