// Package remote pushes and pulls the current branch.
package remote
