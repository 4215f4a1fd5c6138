package diag

import (
	"fmt"
	"os"
	"strings"
)

// Formatter renders diagnostics to stderr with a one-line location, a
// snippet of the offending source line, and any help/notes attached.
type Formatter struct {
	sourceCache map[string]string
}

// NewFormatter creates a diagnostic formatter with an empty source cache.
func NewFormatter() *Formatter {
	return &Formatter{sourceCache: make(map[string]string)}
}

// LoadSource loads and caches the source text for filename.
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format writes d to stderr.
func (f *Formatter) Format(d Diagnostic) {
	severity := d.Severity
	if severity == "" {
		severity = SeverityError
	}

	if d.Span.IsValid() {
		fmt.Fprintf(os.Stderr, "%s: %s[%s]: %s\n", d.Span.String(), severity, d.Code, d.Message)
		if src, err := f.LoadSource(d.Span.Filename); err == nil && src != "" {
			f.printSnippet(src, d.Span)
		}
	} else {
		fmt.Fprintf(os.Stderr, "%s[%s]: %s\n", severity, d.Code, d.Message)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(os.Stderr, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(os.Stderr, "  help: %s\n", d.Help)
	}
}

func (f *Formatter) printSnippet(src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		return
	}
	line := lines[span.Line-1]
	fmt.Fprintf(os.Stderr, "  %4d | %s\n", span.Line, line)

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	col := span.Offset
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	if col+width > len(line) {
		width = len(line) - col
		if width < 1 {
			width = 1
		}
	}
	fmt.Fprintf(os.Stderr, "       | %s%s\n", strings.Repeat(" ", col), strings.Repeat("^", width))
}
