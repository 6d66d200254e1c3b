// Package ui styles terminal output of the results CLI.
package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Enabled turns styling on. It is off when NO_COLOR is set or stderr is
// not a terminal.
var Enabled = os.Getenv("NO_COLOR") == "" &&
	(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

func paint(style, s string) string {
	if !Enabled || s == "" {
		return s
	}
	return style + s + ColorReset
}

func Bold(s string) string {
	return paint(ColorBold, s)
}

func Heading(s string) string {
	return paint(ColorBold+ColorWhite, s)
}

func Accent(s string) string {
	return paint(ColorCyan, s)
}

func Dim(s string) string {
	return paint(ColorDim, s)
}

func Success(s string) string {
	return paint(ColorGreen, s)
}

func Info(s string) string {
	return paint(ColorDim+ColorYellow, s)
}

func Warn(s string) string {
	return paint(ColorYellow, s)
}

func Error(s string) string {
	return paint(ColorRed, s)
}

// Status labels a looked-up record in summary tables
func Status(found bool) string {
	if found {
		return Success("found")
	}
	return Info("not found")
}

// Code colors an error code by whether retrying the same input can help:
// timeouts and network failures are transient, the rest are not.
func Code(code string) string {
	switch code {
	case "TIMEOUT", "NETWORK_ERROR":
		return Warn(code)
	default:
		return Error(code)
	}
}
