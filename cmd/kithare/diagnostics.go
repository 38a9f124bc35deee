package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"kithare/internal/diag"
	"kithare/internal/lexer"
)

// jsonDiagnostic is the --json wire shape for one diagnostic; Begin/End are
// printed as plain code-point offsets rather than diag.Kind/token.Position's
// internal representations.
type jsonDiagnostic struct {
	Kind    string `json:"kind"`
	Begin   int    `json:"begin"`
	End     int    `json:"end"`
	Message string `json:"message"`
}

// reportDiagnostics prints every diagnostic in sink to stderr, either as
// --json records or through the Rust-style reporter, honoring --no-color.
func reportDiagnostics(path, source string, sink *diag.Sink, globals *Globals) {
	if globals.NoColor {
		color.NoColor = true
	}
	if sink.Empty() {
		return
	}

	if globals.JSON {
		records := make([]jsonDiagnostic, 0, len(sink.Diagnostics()))
		for _, d := range sink.Diagnostics() {
			records = append(records, jsonDiagnostic{
				Kind:    d.Kind.String(),
				Begin:   int(d.Begin),
				End:     int(d.End),
				Message: d.Message,
			})
		}
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		enc.Encode(records)
		return
	}

	reporter := diag.NewReporter(path, lexer.Source(source))
	fmt.Fprint(os.Stderr, reporter.FormatAll(sink.Diagnostics()))
}
