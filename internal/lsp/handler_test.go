package lsp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"kithare/internal/lsp"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.kh")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func openDoc(t *testing.T, h *lsp.Handler, path string) string {
	t.Helper()
	uri := "file://" + filepath.ToSlash(path)
	err := h.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri},
	})
	require.NoError(t, err)
	return uri
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	path := writeTempSource(t, "def add(a: int, b: int) -> int {\n    return a + b;\n}\n")
	h := lsp.NewHandler()
	uri := openDoc(t, h, path)

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	require.NotEmpty(t, tokens.Data)

	// Every token record is 5 uint32 fields wide.
	require.Zero(t, len(tokens.Data)%5)
}

func TestTextDocumentSemanticTokensFullReadsUnopenedFile(t *testing.T) {
	path := writeTempSource(t, "var x: int = 1;\n")
	h := lsp.NewHandler()
	uri := "file://" + filepath.ToSlash(path)

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Data)
}

func TestTextDocumentDidOpenParsesWithoutError(t *testing.T) {
	path := writeTempSource(t, "class Foo {\n    var bar: int;\n}\n")
	h := lsp.NewHandler()
	require.NotPanics(t, func() { openDoc(t, h, path) })
}

func TestTextDocumentDidCloseForgetsDocument(t *testing.T) {
	path := writeTempSource(t, "var x: int = 1;\n")
	h := lsp.NewHandler()
	uri := openDoc(t, h, path)

	err := h.TextDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	// Closed, but still on disk: a later semantic-token request re-reads it.
	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Data)
}

func TestTextDocumentCompletionReturnsEmptyList(t *testing.T) {
	h := lsp.NewHandler()
	list, err := h.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{})
	require.NoError(t, err)
	completions, ok := list.(*protocol.CompletionList)
	require.True(t, ok)
	require.False(t, completions.IsIncomplete)
	require.Empty(t, completions.Items)
}

func TestInitializeAdvertisesSemanticTokensLegend(t *testing.T) {
	h := lsp.NewHandler()
	result, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)
	init, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	require.Equal(t, lsp.SemanticTokenTypes, init.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions).Legend.TokenTypes)
}
