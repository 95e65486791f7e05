package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"twitch/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize {
		return style.color + line + ansiReset
	}
	return line
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// checkLines renders preflight results as a summary line followed by one
// line per check. Optional failures render as warnings.
func checkLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results)+1)

	var failed, warned []string
	for _, r := range results {
		switch {
		case r.Passed:
		case r.Optional:
			warned = append(warned, r.Name)
		default:
			failed = append(failed, r.Name)
		}
	}

	switch {
	case len(failed) > 0:
		lines = append(lines, renderStatusLine("Summary", statusError,
			fmt.Sprintf("%d of %d checks failed", len(failed), len(results)), colorize))
	case len(warned) > 0:
		lines = append(lines, renderStatusLine("Summary", statusWarn,
			fmt.Sprintf("ready with warnings (%s)", strings.Join(warned, ", ")), colorize))
	default:
		lines = append(lines, renderStatusLine("Summary", statusOK, "all checks passed", colorize))
	}

	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
			if r.Optional {
				kind = statusWarn
			}
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
