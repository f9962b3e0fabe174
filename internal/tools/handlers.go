package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Simar-malhotra09/pars/internal/engine"
	"github.com/Simar-malhotra09/pars/internal/store"
)

// runEngine validates the path, parses the file and records the run.
func (s *Server) runEngine(ctx context.Context, path string, noCache bool) (*engine.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	cfg := s.cfg
	if noCache {
		cfg.EnableCache = false
	}
	res, err := engine.ParseFile(ctx, path, cfg)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		run := store.Run{
			Path:        res.Path,
			ContentHash: fmt.Sprintf("%016x", res.ContentHash),
			Functions:   len(res.Graph),
			Roots:       len(res.Roots),
			Orphans:     len(res.Orphans),
			RootNames:   res.Roots,
		}
		if err := s.store.RecordRun(run); err != nil {
			slog.Warn("tools.record_run", "path", path, "err", err)
		}
	}
	return res, nil
}

func (s *Server) handleParseFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}

	res, err := s.runEngine(ctx, path, getBoolArg(args, "no_cache"))
	if err != nil {
		return errResult(err.Error()), nil
	}

	functions := make([]map[string]any, 0, len(res.Graph))
	for _, name := range res.Graph.Names() {
		fn := res.Graph[name]
		callees := make([]map[string]any, 0, len(fn.Callees))
		for _, c := range fn.Callees {
			callees = append(callees, map[string]any{
				"callee": c.Callee,
				"line":   c.Line + 1,
			})
		}
		functions = append(functions, map[string]any{
			"name":    fn.Name,
			"line":    fn.Line + 1,
			"callees": callees,
		})
	}
	return jsonResult(map[string]any{
		"path":       res.Path,
		"language":   res.Language,
		"from_cache": res.FromCache,
		"functions":  functions,
		"roots":      res.Roots,
	}), nil
}

func (s *Server) handleGetCallTree(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}

	res, err := s.runEngine(ctx, path, false)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: res.Tree},
		},
	}, nil
}

func (s *Server) handleListOrphans(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}

	res, err := s.runEngine(ctx, path, false)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"path":    res.Path,
		"orphans": res.Orphans,
	}), nil
}

func (s *Server) handleListRuns(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return errResult("run history is not available"), nil
	}
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	limit := getIntArg(args, "limit", 20)

	runs, err := s.store.ListRuns(path, limit)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"runs": runs}), nil
}
