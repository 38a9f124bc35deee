package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"kithare/internal/lsp"
)

const lsName = "kithare"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	kithareHandler := lsp.NewHandler()

	handler := protocol.Handler{
		Initialize:                     kithareHandler.Initialize,
		Initialized:                    kithareHandler.Initialized,
		Shutdown:                       kithareHandler.Shutdown,
		TextDocumentDidOpen:            kithareHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           kithareHandler.TextDocumentDidClose,
		TextDocumentDidChange:          kithareHandler.TextDocumentDidChange,
		TextDocumentCompletion:         kithareHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: kithareHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting Kithare LSP server v%s...", version)

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting Kithare LSP server:", err)
		os.Exit(1)
	}
}
