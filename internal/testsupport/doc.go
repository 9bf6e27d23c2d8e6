// Package testsupport provides recording doubles for git execution and repository queries
// shared by command package tests.
package testsupport
