package commands

import (
	"strings"

	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

const commandModuleRoot = "sluggable.commands"

// CommandLogger returns a logger for the named command module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
