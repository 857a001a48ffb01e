package main

import (
	"context"
	"errors"
	"sync"

	"github.com/bmrb-io/go-nmrstar/debug"
	"github.com/bmrb-io/go-nmrstar/ir"
	"github.com/bmrb-io/go-nmrstar/parse"
	"github.com/bmrb-io/go-nmrstar/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	entry   *ir.Entry
	err     error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ent, err := parse.Parse([]byte(content), parse.ParseSource(uri))
	if debug.LSP() {
		debug.Logf("lsp: parsed %s v%d, err=%v\n", uri, version, err)
	}
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		entry:   ent,
		err:     err,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.validateDocument(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	diagnostics = append(diagnostics, protocol.Diagnostic{
		Range:    errRange(doc.content, doc.err),
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "nmrstar",
	})
	return diagnostics
}

// errRange maps a scanning or grammar error to the full source line it
// was reported on. Error lines are 1-based; protocol lines are 0-based.
func errRange(content string, err error) protocol.Range {
	line := 0
	var te *token.TokenizeErr
	var pe *parse.ParseErr
	switch {
	case errors.As(err, &te):
		line = te.Line - 1
	case errors.As(err, &pe):
		line = pe.Line - 1
	}
	if line < 0 {
		line = 0
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: 0},
		End:   protocol.Position{Line: uint32(line), Character: uint32(lineLen(content, line))},
	}
}

func lineLen(content string, line int) int {
	cur, n := 0, 0
	for _, r := range content {
		if r == '\n' {
			if cur == line {
				return n
			}
			cur++
			n = 0
			continue
		}
		n++
	}
	if cur == line {
		return n
	}
	return 0
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	// full sync: each change carries the complete document
	content := doc.content
	for _, change := range params.ContentChanges {
		content = change.Text
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
