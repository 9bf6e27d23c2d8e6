// Package cli constructs the claw-git command-line interface: the Cobra command
// tree, layered configuration, and structured logging. Running the root command
// without a subcommand prints the repository status.
package cli
