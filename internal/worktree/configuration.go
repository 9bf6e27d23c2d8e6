package worktree

// CommandConfiguration captures the tools.status settings.
type CommandConfiguration struct {
	Fetch bool `mapstructure:"fetch"`
}

// DefaultCommandConfiguration refreshes remote refs before computing divergence.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Fetch: true}
}
