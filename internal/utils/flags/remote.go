package flags

import "github.com/spf13/cobra"

const (
	// RemoteFlagName exposes the shared remote flag name.
	RemoteFlagName = "remote"
	// RemoteFlagUsage describes the shared remote flag purpose.
	RemoteFlagUsage = "Remote to use when no upstream is configured (defaults to tools.push.remote)"
)

// BindRemoteFlag attaches the remote flag to command and returns the bound value.
// An empty value means the configured default applies.
func BindRemoteFlag(command *cobra.Command) *string {
	remoteName := ""
	if command == nil {
		return &remoteName
	}
	if command.Flags().Lookup(RemoteFlagName) == nil {
		command.Flags().StringVar(&remoteName, RemoteFlagName, "", RemoteFlagUsage)
	}
	return &remoteName
}
