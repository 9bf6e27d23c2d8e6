package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindRemoteFlagParsesValue(t *testing.T) {
	command := &cobra.Command{}

	remoteName := BindRemoteFlag(command)
	require.NotNil(t, remoteName)
	require.Empty(t, *remoteName)

	require.NoError(t, command.ParseFlags([]string{"--remote", "upstream"}))
	require.Equal(t, "upstream", *remoteName)
}
