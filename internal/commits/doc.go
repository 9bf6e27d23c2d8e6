// Package commits creates, undoes, and lists commits.
//
// Commit messages can be synthesized from the staged file list so agents can commit
// without composing a message.
package commits
