package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"backlot/internal/artifact"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func statusColor(status string) string {
	switch artifact.Status(status) {
	case artifact.StatusApproved:
		return ansiGreen
	case artifact.StatusIterating:
		return ansiBlue
	case artifact.StatusDraft:
		return ansiYellow
	default:
		return ""
	}
}

func colorizeStatus(status string, colorize bool) string {
	if !colorize {
		return status
	}
	color := statusColor(status)
	if color == "" {
		return status
	}
	return color + status + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
