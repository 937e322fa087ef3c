package mcp

import (
	"context"
	"encoding/json"
	stdlog "log"
	"os"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/pkg/log"
)

type Advisor interface {
	Advise(ctx context.Context, q advisor.Query) (*advisor.Response, error)
}

// Server exposes the calculators and the advisor as MCP tools.
type Server struct {
	mcp   *server.MCPServer
	tools map[string]toolDef
}

func NewServer(adv Advisor, currency string) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			core.AppName,
			core.AppVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	ft := &financeTools{advisor: adv, currency: currency}
	s.tools = ft.definitions()
	for _, name := range s.ToolNames() {
		def := s.tools[name]
		tool := mcp.NewToolWithRawSchema(name, def.Description, json.RawMessage(def.Schema))
		s.mcp.AddTool(tool, s.wrap(name, def.Handler))
	}
	return s
}

func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs a tool by name with raw JSON arguments.
func (s *Server) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	def, ok := s.tools[name]
	if !ok {
		return "", core.NewInvalidInput("tool", "unknown tool "+name)
	}
	return def.Handler(ctx, args)
}

func (s *Server) wrap(name string, h toolHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
		}

		log.FromCtx(ctx).Info().Str("tool", name).RawJSON("args", args).Msg("executing tool")
		out, err := h(ctx, args)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("tool", name).Msg("tool failed")
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio serves MCP over stdin/stdout until ctx is cancelled. Logs must
// go to stderr so they do not corrupt the protocol stream.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(log.FromCtx(ctx), "", 0))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}
