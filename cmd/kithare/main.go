package main

import (
	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kithare"),
		kong.Description("Kithare front-end CLI"),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// Globals holds the flags shared by every subcommand.
type Globals struct {
	NoColor bool `help:"Disable colored diagnostic output." name:"no-color"`
	JSON    bool `help:"Print machine-readable JSON instead of text." name:"json"`
}

type CLI struct {
	Globals

	Tokens TokensCmd `cmd:"" help:"Lex a file and print one token per line."`
	Parse  ParseCmd  `cmd:"" help:"Parse a file and print the resulting AST."`
	Check  CheckCmd  `cmd:"" help:"Parse a file and report diagnostics only."`
}
