package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Tools.Replace.PreviewLines != DefaultPreviewLines {
		t.Errorf("PreviewLines = %d, want %d", cfg.Tools.Replace.PreviewLines, DefaultPreviewLines)
	}
	if cfg.Tools.Replace.MaxFileSizeKB != 4096 {
		t.Errorf("MaxFileSizeKB = %d, want 4096", cfg.Tools.Replace.MaxFileSizeKB)
	}
	if !cfg.BackupEnabled() {
		t.Error("backup should default to enabled")
	}
	if cfg.Workspace.AllowOutsideWorkspace {
		t.Error("outside-workspace access should default to disabled")
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Tools.Replace.PreviewLines != DefaultPreviewLines {
		t.Errorf("PreviewLines = %d, want default", cfg.Tools.Replace.PreviewLines)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
workspace:
  root: ` + dir + `
  allow_outside_workspace: true
log:
  path: /tmp/patchtool.log
tools:
  replace:
    default_encoding: latin-1
    preview_lines: 7
    backup: false
    max_file_size_kb: 128
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workspace.Root != dir {
		t.Errorf("Root = %q, want %q", cfg.Workspace.Root, dir)
	}
	if !cfg.Workspace.AllowOutsideWorkspace {
		t.Error("allow_outside_workspace not parsed")
	}
	if cfg.Log.Path != "/tmp/patchtool.log" {
		t.Errorf("Log.Path = %q", cfg.Log.Path)
	}
	if cfg.Tools.Replace.DefaultEncoding != "latin-1" {
		t.Errorf("DefaultEncoding = %q", cfg.Tools.Replace.DefaultEncoding)
	}
	if cfg.Tools.Replace.PreviewLines != 7 {
		t.Errorf("PreviewLines = %d, want 7", cfg.Tools.Replace.PreviewLines)
	}
	if cfg.BackupEnabled() {
		t.Error("backup: false not honored")
	}
	if cfg.Tools.Replace.MaxFileSizeKB != 128 {
		t.Errorf("MaxFileSizeKB = %d, want 128", cfg.Tools.Replace.MaxFileSizeKB)
	}
}

func TestLoad_RelativeWorkspaceRootMadeAbsolute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "workspace:\n  root: ./ws\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !filepath.IsAbs(cfg.Workspace.Root) {
		t.Errorf("workspace root not absolute: %q", cfg.Workspace.Root)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("workspace: [not: valid"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error for invalid yaml")
	}
}
