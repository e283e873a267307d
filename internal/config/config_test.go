package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProjectDir != dir {
		t.Errorf("ProjectDir = %q, want %q", cfg.ProjectDir, dir)
	}
	if cfg.OutputDir != filepath.Join(dir, "contracts") {
		t.Errorf("OutputDir = %q, want project-relative contracts", cfg.OutputDir)
	}
	if cfg.BundleDir != filepath.Join(dir, ".lexforge", "bundles") {
		t.Errorf("BundleDir = %q, want project-relative bundle dir", cfg.BundleDir)
	}
	if cfg.Network != "localhost:8545" {
		t.Errorf("Network = %q, want default", cfg.Network)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("output_dir: build/sol\nnetwork: sepolia\ndebug: true\n")
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), payload, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != filepath.Join(dir, "build", "sol") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Network != "sepolia" {
		t.Errorf("Network = %q, want sepolia", cfg.Network)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	// Unset keys keep their defaults.
	if cfg.BundleDir != filepath.Join(dir, ".lexforge", "bundles") {
		t.Errorf("BundleDir = %q, want default", cfg.BundleDir)
	}
}

func TestLoadAbsoluteOutputDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "artifacts")
	payload := []byte("output_dir: " + out + "\n")
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), payload, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != out {
		t.Errorf("OutputDir = %q, want absolute %q", cfg.OutputDir, out)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}
