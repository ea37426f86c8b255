package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/gops/agent"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/pdxkit/go-pdxscript/schema"
	"github.com/pdxkit/go-pdxscript/scope"
	"github.com/pdxkit/go-pdxscript/validate"
)

const lsName = "pdx-lsp"

var (
	version = "0.0.1"
)

func main() {
	rulesDir := flag.String("rules", os.Getenv("PDX_RULES_DIR"), "directory with schema/type/scope YAML")
	flag.Parse()

	if os.Getenv("PDX_LSP_GOPS") != "" {
		// gops agent for live debugging of the running server
		if err := agent.Listen(agent.Options{}); err != nil {
			io.WriteString(os.Stderr, "gops agent failed: "+err.Error()+"\n")
		}
	}

	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{
		read:  os.Stdin,
		write: os.Stdout,
	})
	server := &Server{}
	server.setup(*rulesDir)
	handler := protocol.ServerHandler(server, nil)
	conn := jsonrpc2.NewConn(stream)
	server.conn = conn
	conn.Go(ctx, handler)
	<-conn.Done()
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}

type Server struct {
	conn      jsonrpc2.Conn
	docs      *documentStore
	validator *validate.Validator
	rootPath  string
}

func (s *Server) setup(rulesDir string) {
	s.docs = &documentStore{docs: map[string]*document{}}
	s.validator = validate.New(schema.NewRegistry(), scope.NewRegistry(nil))
	if rulesDir == "" {
		return
	}
	schemas, err := schema.LoadDir(rulesDir)
	if err != nil {
		// an unusable rules dir must not kill the session
		io.WriteString(os.Stderr, lsName+": "+err.Error()+"\n")
		return
	}
	s.validator.Schemas = schemas
	if scopes, err := scope.LoadFile(rulesDir + "/scopes.yaml"); err == nil {
		s.validator.Scopes = scopes
	}
}

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if params.RootURI != "" {
		s.rootPath = params.RootURI.Filename()
	}
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			Change:    protocol.TextDocumentSyncKindIncremental,
			OpenClose: true,
			Save:      &protocol.SaveOptions{IncludeText: false},
		},
		HoverProvider: true,
	}
	return &protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    lsName,
			Version: version,
		},
	}, nil
}

func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) Exit(ctx context.Context) error {
	return nil
}

func (s *Server) SetTrace(ctx context.Context, params *protocol.SetTraceParams) error {
	return nil
}
