// Package tools exposes the parser over MCP stdio for editor and agent use.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Simar-malhotra09/pars/internal/cache"
	"github.com/Simar-malhotra09/pars/internal/engine"
	"github.com/Simar-malhotra09/pars/internal/store"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp    *mcp.Server
	store  *store.Store
	memory *cache.Memory
	cfg    engine.Config
}

// NewServer creates an MCP server with all tools registered. The store may
// be nil, in which case run history is unavailable and parses are not
// recorded.
func NewServer(s *store.Store, cfg engine.Config) (*Server, error) {
	mem, err := cache.NewMemory(cache.DefaultMemoryEntries)
	if err != nil {
		return nil, err
	}
	cfg.Memory = mem
	srv := &Server{
		store:  s,
		memory: mem,
		cfg:    cfg,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "pars",
				Version: "0.1.0",
			},
			nil,
		),
	}
	srv.registerTools()
	return srv, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	// 1. parse_file
	s.mcp.AddTool(&mcp.Tool{
		Name:        "parse_file",
		Description: "Parse one source file (.py or .rs) into a heuristic call graph. Returns every function with its definition line and callees. Results are cached by content hash and invalidated on any change.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Absolute path to the source file"
				},
				"no_cache": {
					"type": "boolean",
					"description": "Skip the on-disk parse cache"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleParseFile)

	// 2. get_call_tree
	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_call_tree",
		Description: "Render the call tree of a source file from its root functions (functions nobody calls), depth-first in call-discovery order. Recursive and mutually recursive calls are expanded once.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Absolute path to the source file"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleGetCallTree)

	// 3. list_orphans
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_orphans",
		Description: "List functions unreached from any root: disconnected functions and members of unreachable cycles, each with its one-based definition line.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Absolute path to the source file"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleListOrphans)

	// 4. list_runs
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_runs",
		Description: "List recorded analysis runs, newest first: content hash, function/root/orphan counts and timestamps. Filter by file path or list all.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Source file path to filter by. Omit for all files."
				},
				"limit": {
					"type": "integer",
					"description": "Maximum runs to return (default 20)"
				}
			}
		}`),
	}, s.handleListRuns)
}

// jsonResult marshals data into a tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getIntArg extracts an integer argument with a default value.
func getIntArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return defaultVal
	}
	return int(f)
}

// getBoolArg extracts a boolean argument from parsed args.
func getBoolArg(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}
