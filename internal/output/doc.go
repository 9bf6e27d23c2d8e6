// Package output styles claw-git's human-readable reports.
//
// Palette binds lipgloss styles to one writer so color decisions follow that
// writer: ANSI escapes when it is a terminal (or color is forced), plain text
// otherwise. Layout never depends on the color mode.
package output
