package main

import (
	"os"

	"kithare/internal/diag"
	"kithare/internal/parser"
)

type CheckCmd struct {
	Path string `arg:"" help:"Source file to check." required:""`
}

func (c *CheckCmd) Run(globals *Globals) error {
	content, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	sink := diag.NewSink()
	parser.Parse(string(content), sink)

	reportDiagnostics(c.Path, string(content), sink, globals)
	if !sink.Empty() {
		os.Exit(1)
	}
	return nil
}
