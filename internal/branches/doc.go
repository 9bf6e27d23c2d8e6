// Package branches lists local branches with the checked-out branch marked.
package branches
