package main

import (
	"context"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/pdxkit/go-pdxscript/diag"
	"github.com/pdxkit/go-pdxscript/ir"
	"github.com/pdxkit/go-pdxscript/parse"
	"github.com/pdxkit/go-pdxscript/token"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	root    *ir.Node
	braces  parse.BraceReport
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri, logicalPath, content string, version int32) {
	doc := &document{uri: uri, content: content, version: version}
	doc.root = parse.Parse(content, logicalPath, parse.ParseBraceReport(&doc.braces))
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// logicalPath maps a document URI to the path schemas match against:
// relative to the workspace root when possible, forward slashes.
func (s *Server) logicalPath(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	path = strings.ReplaceAll(path, `\`, "/")
	if s.rootPath != "" {
		root := strings.ReplaceAll(s.rootPath, `\`, "/")
		if rel, ok := strings.CutPrefix(path, root); ok {
			return strings.TrimPrefix(rel, "/")
		}
	}
	return path
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
	for _, pos := range doc.braces.UnclosedOpens {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    pointRange(pos),
			Severity: protocol.DiagnosticSeverityError,
			Message:  "unmatched opening brace",
			Source:   lsName,
		})
	}
	for _, pos := range doc.braces.StrayCloses {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    pointRange(pos),
			Severity: protocol.DiagnosticSeverityError,
			Message:  "unmatched closing brace",
			Source:   lsName,
		})
	}
	for _, d := range s.validator.Validate(s.logicalPath(doc.uri), doc.root) {
		diagnostics = append(diagnostics, toProtocol(d))
	}
	return diagnostics
}

func toProtocol(d diag.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(d.Range.Start.Line), Character: uint32(d.Range.Start.Character)},
			End:   protocol.Position{Line: uint32(d.Range.End.Line), Character: uint32(d.Range.End.Character)},
		},
		Severity: severityOf(d.Severity),
		Code:     d.Code,
		Message:  d.Message,
		Source:   lsName,
	}
}

func severityOf(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.Error:
		return protocol.DiagnosticSeverityError
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	case diag.Information:
		return protocol.DiagnosticSeverityInformation
	case diag.Hint:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityWarning
}

func pointRange(pos token.Pos) protocol.Range {
	p := protocol.Position{Line: uint32(pos.Line), Character: uint32(pos.Character)}
	q := p
	q.Character++
	return protocol.Range{Start: p, End: q}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.put(uri, s.logicalPath(uri), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		r := change.Range
		if r.Start == (protocol.Position{}) && r.End == (protocol.Position{}) {
			// full document replacement
			content = change.Text
			continue
		}
		start := offsetOf(content, int(r.Start.Line), int(r.Start.Character))
		end := offsetOf(content, int(r.End.Line), int(r.End.Character))
		if start <= end && end <= len(content) {
			content = content[:start] + change.Text + content[end:]
		}
	}
	s.docs.put(uri, s.logicalPath(uri), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

func offsetOf(content string, line, col int) int {
	curLine, curCol := 0, 0
	for i := range content {
		if curLine == line && curCol == col {
			return i
		}
		if content[i] == '\n' {
			curLine++
			curCol = 0
		} else {
			curCol++
		}
	}
	return len(content)
}
