package tools

import (
	"github.com/kvit-s/patchtool/internal/config"
)

// newTestConfig creates a minimal config for tool tests.
func newTestConfig(workspaceRoot string) *config.Config {
	cfg := config.Default()
	cfg.Workspace.Root = workspaceRoot
	return cfg
}
