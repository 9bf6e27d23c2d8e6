// Package shared holds the value types and collaborator interfaces used across claw-git commands.
package shared
