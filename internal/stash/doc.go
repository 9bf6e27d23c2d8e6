// Package stash saves, restores, lists, and drops stashed changes.
package stash
