// Package tui renders lint reports for terminals, as plain text or as
// glamour-styled markdown when stdout is a TTY.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/graft/internal/validator"
)

// Markdown formats a report as markdown, one section per affected directory.
func Markdown(r *validator.Report) string {
	var sb strings.Builder

	sb.WriteString("# Contract Report\n\n")
	fmt.Fprintf(&sb, "Checked **%d** units and **%d** modules (`%.12s`).\n\n", r.Units, r.Modules, r.Digest)

	if len(r.Findings) == 0 {
		sb.WriteString("No findings. All contracts hold.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "**%d** error(s), **%d** warning(s).\n\n", r.ErrorCount(), r.WarningCount())

	for _, path := range findingPaths(r) {
		fmt.Fprintf(&sb, "## %s\n\n", pathLabel(path))
		for _, f := range r.Findings {
			if f.Path != path {
				continue
			}
			fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", f.Severity, f.Code, f.Message)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Plain formats a report as one line per finding, with severity coloring
// when the terminal supports it. This is the non-TTY and piped-output form.
func Plain(r *validator.Report) string {
	p := termenv.ColorProfile()
	var sb strings.Builder

	for _, f := range r.Findings {
		sev := string(f.Severity)
		switch f.Severity {
		case validator.SeverityError:
			sev = termenv.String(sev).Foreground(p.Color("#ef4444")).String()
		case validator.SeverityWarning:
			sev = termenv.String(sev).Foreground(p.Color("#f59e0b")).String()
		}
		fmt.Fprintf(&sb, "%s: %s: %s: %s\n", pathLabel(f.Path), sev, f.Code, f.Message)
	}

	fmt.Fprintf(&sb, "%d unit(s), %d module(s), %d error(s), %d warning(s)\n",
		r.Units, r.Modules, r.ErrorCount(), r.WarningCount())
	return sb.String()
}

// Pretty renders the markdown report through glamour.
func Pretty(r *validator.Report) (string, error) {
	return NewRenderer()(Markdown(r))
}

func findingPaths(r *validator.Report) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, f := range r.Findings {
		if !seen[f.Path] {
			seen[f.Path] = true
			paths = append(paths, f.Path)
		}
	}
	sort.Strings(paths)
	return paths
}

func pathLabel(path string) string {
	if path == "" {
		return "(project)"
	}
	return path
}
