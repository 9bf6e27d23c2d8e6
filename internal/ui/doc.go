// Package ui narrates git invocations for people reading console logs.
//
// ConsoleCommandEventLogger implements execshell.CommandEventObserver and is
// attached when the log format is console; structured logs keep the
// executor's own debug entries.
package ui
