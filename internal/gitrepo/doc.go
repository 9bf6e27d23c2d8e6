// Package gitrepo reads repository state through git and parses its fixed-format output.
//
// The Parse functions are pure: they turn porcelain status, rev-list counts,
// log lines, and branch listings into shared value types without running git.
// RepositoryManager pairs each query with one git invocation and one parser.
package gitrepo
