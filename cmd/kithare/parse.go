package main

import (
	"fmt"
	"os"

	"kithare/internal/ast"
	"kithare/internal/diag"
	"kithare/internal/parser"
)

type ParseCmd struct {
	Path string `arg:"" help:"Source file to parse." required:""`
}

func (c *ParseCmd) Run(globals *Globals) error {
	content, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	sink := diag.NewSink()
	stmts := parser.Parse(string(content), sink)

	fmt.Println(ast.Print(stmts))

	reportDiagnostics(c.Path, string(content), sink, globals)
	return nil
}
