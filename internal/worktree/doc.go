// Package worktree reports the state of the current repository: the full status report,
// its JSON form, and the one-line quick summary.
package worktree
