// Package diag is the front-end's append-only diagnostic sink. The lexer
// and parser never abort on malformed input; they push a Diagnostic here and
// synthesize a best-effort result instead.
package diag

import (
	"fmt"

	"kithare/internal/token"
)

// Kind distinguishes where a diagnostic originated.
type Kind int

const (
	Lexer Kind = iota
	Parser
)

func (k Kind) String() string {
	if k == Lexer {
		return "lexer"
	}
	return "parser"
}

// Diagnostic is one {kind, offset, message} record.
type Diagnostic struct {
	Kind    Kind
	Begin   token.Position
	End     token.Position
	Message string
}

// Sink collects diagnostics in the order they were raised. A Sink is owned
// by one parse invocation; it is not safe to share across concurrent parses.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Lexer records a lexer-kind diagnostic.
func (s *Sink) Lexer(begin, end token.Position, format string, args ...any) {
	s.add(Lexer, begin, end, format, args...)
}

// Parser records a parser-kind diagnostic.
func (s *Sink) Parser(begin, end token.Position, format string, args ...any) {
	s.add(Parser, begin, end, format, args...)
}

func (s *Sink) add(kind Kind, begin, end token.Position, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Kind:    kind,
		Begin:   begin,
		End:     end,
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns every diagnostic raised so far, in raise order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Empty reports whether the sink has no diagnostics — "parse had errors"
// is exactly `!sink.Empty()`.
func (s *Sink) Empty() bool {
	return len(s.diagnostics) == 0
}
