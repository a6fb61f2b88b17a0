package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPreviewLines is the number of change groups rendered when neither
// the request nor the config asks for a specific count.
const DefaultPreviewLines = 3

type Config struct {
	Workspace struct {
		Root                  string `yaml:"root"`
		AllowOutsideWorkspace bool   `yaml:"allow_outside_workspace"`
	} `yaml:"workspace"`

	Log struct {
		Path        string `yaml:"path"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`

	Tools ToolsConfig `yaml:"tools"`
}

// ToolsConfig holds per-tool configuration
type ToolsConfig struct {
	Replace ReplaceToolConfig `yaml:"replace"`
}

// ReplaceToolConfig configures the replace tool
type ReplaceToolConfig struct {
	DefaultEncoding string `yaml:"default_encoding"` // codec used when the request omits one (default utf-8)
	PreviewLines    int    `yaml:"preview_lines"`    // change groups rendered per preview
	Backup          *bool  `yaml:"backup"`           // nil = default true
	MaxFileSizeKB   int    `yaml:"max_file_size_kb"` // refuse files larger than this
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a yaml config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Convert workspace root to absolute path
	if cfg.Workspace.Root != "" {
		absRoot, err := filepath.Abs(cfg.Workspace.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
		}
		cfg.Workspace.Root = absRoot
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Tools.Replace.PreviewLines == 0 {
		c.Tools.Replace.PreviewLines = DefaultPreviewLines
	}
	if c.Tools.Replace.MaxFileSizeKB == 0 {
		c.Tools.Replace.MaxFileSizeKB = 4096
	}
}

// BackupEnabled reports the backup-before-overwrite default for requests
// that do not set the backup flag explicitly.
func (c *Config) BackupEnabled() bool {
	if c.Tools.Replace.Backup == nil {
		return true
	}
	return *c.Tools.Replace.Backup
}
