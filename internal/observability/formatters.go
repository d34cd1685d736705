// Package observability provides formatted output utilities for verbose mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mockhotels/brandaudit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxPreviewLines caps how much raw model output is echoed
	maxPreviewLines = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines by rune so multibyte model output survives
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBrandSpec outputs a summary of a fresh extraction result.
func (p *Printer) PrintBrandSpec(spec *types.BrandSpec) {
	if spec == nil {
		return
	}

	var sb strings.Builder
	if spec.Parsed {
		sb.WriteString("Parsed:   yes\n\n")
		if display, ok := spec.DisplayJSON(); ok {
			sb.WriteString(preview(display))
		}
	} else {
		sb.WriteString("Parsed:   no (raw text kept)\n\n")
		sb.WriteString(preview(spec.Raw))
	}

	p.printBox("EXTRACTED BRAND SPEC", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerdict outputs a summary of the QA verdict.
func (p *Printer) PrintVerdict(v *types.Verdict) {
	if v == nil {
		return
	}

	var sb strings.Builder
	if !v.Parsed {
		sb.WriteString("Could not interpret model output as a verdict.\n\n")
		sb.WriteString(preview(v.Raw))
		p.printBox("QA VERDICT (UNPARSED)", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	issue := "no"
	if v.IssuePresent {
		issue = "YES"
	}
	sb.WriteString(fmt.Sprintf("Issue:      %s\n", issue))
	sb.WriteString(fmt.Sprintf("Category:   %s\n", v.Category))
	sb.WriteString(fmt.Sprintf("Schema OK:  %t\n\n", v.SchemaValid))
	sb.WriteString(fmt.Sprintf("Description: %s\n", v.Description))
	sb.WriteString(fmt.Sprintf("Resolution:  %s\n", v.Resolution))

	p.printBox("QA VERDICT", strings.TrimSuffix(sb.String(), "\n"))
}

// preview returns at most maxPreviewLines lines of text.
func preview(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= maxPreviewLines {
		return text
	}
	kept := lines[:maxPreviewLines]
	return strings.Join(kept, "\n") + fmt.Sprintf("\n... and %d more lines", len(lines)-maxPreviewLines)
}
