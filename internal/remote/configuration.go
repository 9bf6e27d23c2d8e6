package remote

import (
	"strings"

	"github.com/temirov/clawgit/internal/shared"
)

// CommandConfiguration captures the tools.push settings.
type CommandConfiguration struct {
	RemoteName string `mapstructure:"remote"`
}

// DefaultCommandConfiguration pushes new branches to origin.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{RemoteName: shared.OriginRemoteNameConstant}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	configuration.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(configuration.RemoteName) == 0 {
		configuration.RemoteName = shared.OriginRemoteNameConstant
	}
	return configuration
}
