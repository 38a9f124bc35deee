// Package ast defines the Kithare front-end's abstract syntax tree: the
// closed set of Statement and Expression variants built by the parser and
// never mutated afterward. Every parent-child relationship is exclusive
// ownership — a tree, never a DAG.
package ast

import "kithare/internal/token"

// Node is implemented by every Statement and Expression variant. NodePos and
// NodeEndPos are opaque, totally ordered cursor positions into the source
// buffer. For any node N and child C, N.NodePos() <= C.NodePos() and
// C.NodeEndPos() <= N.NodeEndPos().
type Node interface {
	NodePos() token.Position
	NodeEndPos() token.Position
	String() string
}

// Span is embedded by every concrete node to supply NodePos/NodeEndPos
// without repeating the same pair of fields and methods on each of the
// ~40 variants. Both fields are exported so callers outside the package
// (the parser) can build node literals directly.
type Span struct {
	Pos    token.Position
	EndPos token.Position
}

func NewSpan(pos, endPos token.Position) Span { return Span{Pos: pos, EndPos: endPos} }

func (s Span) NodePos() token.Position    { return s.Pos }
func (s Span) NodeEndPos() token.Position { return s.EndPos }
