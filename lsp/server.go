// Package lsp reports annotation usage errors to editors while files are
// being edited. Every open document is run through the rewrite engine on
// open, change and save; the diagnostics are published, the rewritten source
// is discarded.
package lsp

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/weave/project"
	"github.com/dhamidi/weave/rewrite"
)

const lsName = "weave"

var log = commonlog.GetLogger("weave.lsp")

type Server struct {
	engine  *rewrite.Engine
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[string]string
}

// NewServer creates a server. A nil engine is replaced on initialize by one
// configured from the workspace root.
func NewServer(version string, engine *rewrite.Engine) *Server {
	ls := &Server{
		engine:    engine,
		version:   version,
		documents: map[string]string{},
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if ls.engine == nil {
		rootDir := "."
		if params.RootPath != nil && *params.RootPath != "" {
			rootDir = *params.RootPath
		} else if params.RootURI != nil && *params.RootURI != "" {
			if path, err := uriToPath(*params.RootURI); err == nil {
				rootDir = path
			}
		}
		p, err := project.LoadFrom(rootDir)
		if err != nil {
			return nil, err
		}
		ls.engine = p.Engine()
		log.Infof("workspace %s", rootDir)
	}

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	ls.mu.Lock()
	text, ok := ls.documents[params.TextDocument.URI]
	ls.mu.Unlock()
	if ok {
		ls.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mu.Unlock()
	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri, text string) {
	ls.mu.Lock()
	ls.documents[uri] = text
	ls.mu.Unlock()

	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("%s: %s", uri, err)
		return
	}
	publish(ctx, uri, ls.analyze(path, text))
}

// analyze runs the engine over text and converts its diagnostics. A file
// the engine cannot process yields no diagnostics.
func (ls *Server) analyze(path, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if ls.engine == nil {
		return diagnostics
	}
	res, err := ls.engine.Rewrite(context.Background(), path, []byte(text))
	if err != nil {
		log.Errorf("%s: %s", path, err)
		return diagnostics
	}
	lines := strings.Split(text, "\n")
	for _, d := range res.Diagnostics {
		diagnostics = append(diagnostics, toProtocol(lines, d))
	}
	return diagnostics
}

func publish(ctx *glsp.Context, uri string, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toProtocol(lines []string, d rewrite.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	switch d.Severity {
	case rewrite.SeverityWarning:
		severity = protocol.DiagnosticSeverityWarning
	case rewrite.SeverityInfo:
		severity = protocol.DiagnosticSeverityInformation
	}
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: position(lines, d.Line, d.Column),
			End:   position(lines, d.EndLine, d.EndColumn),
		},
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
}

// position converts a 1-based line and byte column to the 0-based line and
// UTF-16 offset editors expect.
func position(lines []string, line, column int) protocol.Position {
	if line < 1 {
		return protocol.Position{}
	}
	pos := protocol.Position{Line: protocol.UInteger(line - 1)}
	if line > len(lines) {
		return pos
	}
	prefix := lines[line-1]
	if column-1 < len(prefix) {
		prefix = prefix[:max(column-1, 0)]
	}
	units := 0
	for len(prefix) > 0 {
		r, size := utf8.DecodeRuneInString(prefix)
		units += utf16.RuneLen(r)
		prefix = prefix[size:]
	}
	pos.Character = protocol.UInteger(units)
	return pos
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
