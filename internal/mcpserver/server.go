// Package mcpserver exposes one calculator session as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/input"
)

// Tool names
const (
	ToolPress        = "calc.press"
	ToolState        = "calc.state"
	ToolHistory      = "calc.history"
	ToolRecall       = "calc.recall"
	ToolClearHistory = "calc.clear_history"
)

// StateResult is the JSON shape returned by calc.press, calc.state and
// calc.recall.
type StateResult struct {
	Display         string `json:"display"`
	Expression      string `json:"expression"`
	Error           bool   `json:"error"`
	ErrorMessage    string `json:"error_message,omitempty"`
	PendingOperator string `json:"pending_operator,omitempty"`
	HistoryCount    int    `json:"history_count"`
}

// HistoryResult is the JSON shape returned by calc.history.
type HistoryResult struct {
	Count   int          `json:"count"`
	Entries []calc.Entry `json:"entries"`
}

// Server serves a single engine. Tool calls may arrive concurrently, so
// every engine access goes through mu.
type Server struct {
	mcpServer *server.MCPServer
	log       zerolog.Logger

	mu     sync.Mutex
	engine *calc.Engine
}

// New creates a server around engine and registers its tools.
func New(name, version string, engine *calc.Engine, log zerolog.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(name, version),
		engine:    engine,
		log:       log,
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func (s *Server) Serve() error {
	s.log.Info().Msg("serving MCP on stdio")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serving MCP: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(ToolPress,
		mcp.WithDescription("Press calculator keys and return the resulting state. "+
			"Keys are characters such as 12+3= or space separated words such as \"9 sqrt\"."),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Key sequence to press")),
	), s.handlePress)

	s.mcpServer.AddTool(mcp.NewTool(ToolState,
		mcp.WithDescription("Get the calculator display, expression trace and error state"),
	), s.handleState)

	s.mcpServer.AddTool(mcp.NewTool(ToolHistory,
		mcp.WithDescription("List the calculation history, most recent first"),
	), s.handleHistory)

	s.mcpServer.AddTool(mcp.NewTool(ToolRecall,
		mcp.WithDescription("Put a history result back on the display"),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("History position (0 is the most recent)")),
	), s.handleRecall)

	s.mcpServer.AddTool(mcp.NewTool(ToolClearHistory,
		mcp.WithDescription("Delete every history entry"),
	), s.handleClearHistory)
}

func (s *Server) handlePress(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := mcp.ParseString(req, "keys", "")
	if keys == "" {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}

	events, err := input.Parse(keys)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range events {
		s.engine.Apply(ev)
	}
	s.log.Debug().Str("keys", keys).Str("display", s.engine.MainDisplay()).Msg("press")
	return jsonResult(s.stateLocked())
}

func (s *Server) handleState(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return jsonResult(s.stateLocked())
}

func (s *Server) handleHistory(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	entries := s.engine.History()
	s.mu.Unlock()

	if entries == nil {
		entries = []calc.Entry{}
	}
	return jsonResult(HistoryResult{Count: len(entries), Entries: entries})
}

func (s *Server) handleRecall(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := mcp.ParseFloat64(req, "index", -1)
	if raw < 0 || raw != math.Trunc(raw) {
		return mcp.NewToolResultError("index must be a non-negative integer"), nil
	}
	idx := int(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.engine.History()); idx >= n {
		return mcp.NewToolResultError(fmt.Sprintf("index %d out of range: history has %d entries", idx, n)), nil
	}
	s.engine.Recall(idx)
	return jsonResult(s.stateLocked())
}

func (s *Server) handleClearHistory(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ClearHistory()
	s.log.Info().Msg("history cleared")
	return mcp.NewToolResultText("History cleared"), nil
}

// stateLocked must be called with mu held.
func (s *Server) stateLocked() StateResult {
	st := s.engine.State()
	return StateResult{
		Display:         st.MainDisplay,
		Expression:      st.ExpressionTrace,
		Error:           st.HasError(),
		ErrorMessage:    st.Err.Message(),
		PendingOperator: st.PendingOperator.Symbol(),
		HistoryCount:    len(st.History),
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
