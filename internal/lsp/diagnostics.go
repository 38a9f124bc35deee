package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"kithare/internal/diag"
)

// convertDiagnostics resolves every diagnostic's code-point span to an LSP
// line/character range against idx, tagging lexer- and parser-origin
// diagnostics with distinct Source strings so an editor can filter by stage.
func convertDiagnostics(ds []diag.Diagnostic, idx *lineIndex) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		startLine, startChar := idx.Resolve(d.Begin)
		endLine, endChar := idx.Resolve(d.End)
		if d.End <= d.Begin {
			endChar = startChar + 1
			endLine = startLine
		}
		source := "kithare-parser"
		if d.Kind == diag.Lexer {
			source = "kithare-lexer"
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: startLine, Character: startChar},
				End:   protocol.Position{Line: endLine, Character: endChar},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(source),
			Message:  d.Message,
		})
	}
	return out
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                           { return &s }
