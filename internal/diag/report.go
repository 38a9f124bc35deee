package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders Diagnostics against the original source, Rust-compiler
// style, with the offending line, a caret underline, and a kind tag. It is
// a thin generalization of the teacher's errors.ErrorReporter: one sink can
// hold both lexer and parser diagnostics, and NewReporter walks the whole
// source buffer once up front to build the line table used to resolve
// line/column for each offset (Position is opaque — this is the "resolve
// externally" step spec.md asks for).
type Reporter struct {
	filename string
	lines    []string
	// offsets[i] is the code-point offset at which lines[i] begins.
	offsets []int
}

// NewReporter builds a Reporter over the given source buffer (not including
// the lexer's null sentinel).
func NewReporter(filename string, source []rune) *Reporter {
	r := &Reporter{filename: filename}
	start := 0
	for i, c := range source {
		if c == '\n' {
			r.lines = append(r.lines, string(source[start:i]))
			r.offsets = append(r.offsets, start)
			start = i + 1
		}
	}
	r.lines = append(r.lines, string(source[start:]))
	r.offsets = append(r.offsets, start)
	return r
}

// lineCol resolves a code-point offset to a 1-based (line, column) pair.
func (r *Reporter) lineCol(pos int) (line, col int) {
	line = len(r.offsets) - 1
	for i, off := range r.offsets {
		if off > pos {
			line = i - 1
			break
		}
	}
	if line < 0 {
		line = 0
	}
	col = pos - r.offsets[line] + 1
	return line + 1, col
}

// FormatAll renders every diagnostic in ds, in order.
func (r *Reporter) FormatAll(ds []Diagnostic) string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(r.Format(d))
	}
	return b.String()
}

// Format renders a single diagnostic.
func (r *Reporter) Format(d Diagnostic) string {
	var b strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	line, col := r.lineCol(int(d.Begin))
	length := int(d.End) - int(d.Begin)
	if length <= 0 {
		length = 1
	}

	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	indent := strings.Repeat(" ", width)

	b.WriteString(fmt.Sprintf("%s[%s]: %s\n", red("error"), d.Kind, d.Message))
	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, line, col))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if line-1 >= 1 && line-1 <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n", dim(fmt.Sprintf("%*d", width, line-1)), dim("│"), r.lines[line-2]))
	}
	if line >= 1 && line <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), r.lines[line-1]))
		marker := strings.Repeat(" ", max0(col-1)) + red(strings.Repeat("^", length))
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}
	if line < len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n", dim(fmt.Sprintf("%*d", width, line+1)), dim("│"), r.lines[line]))
	}

	b.WriteString("\n")
	return b.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
