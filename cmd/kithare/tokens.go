package main

import (
	"fmt"
	"os"

	"kithare/internal/diag"
	"kithare/internal/lexer"
	"kithare/internal/token"
)

type TokensCmd struct {
	Path string `arg:"" help:"Source file to lex." required:""`
}

func (c *TokensCmd) Run(globals *Globals) error {
	content, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	sink := diag.NewSink()
	cursor := lexer.NewCursor(lexer.Source(string(content)))
	for {
		tok := cursor.Lex(sink)
		fmt.Printf("%-12s %q\n", tok.Kind, tok.Lexeme())
		if tok.Kind == token.EOF {
			break
		}
	}

	reportDiagnostics(c.Path, string(content), sink, globals)
	return nil
}
