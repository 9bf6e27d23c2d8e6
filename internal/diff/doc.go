// Package diff prints working tree or staged diffs, optionally limited to paths.
package diff
