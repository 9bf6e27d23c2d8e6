// Package flags provides pflag values shared by claw-git commands: yes/no toggles,
// validated choices, and the remote selector.
package flags
