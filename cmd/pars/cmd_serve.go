package main

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/Simar-malhotra09/pars/internal/chunkio"
	"github.com/Simar-malhotra09/pars/internal/engine"
	"github.com/Simar-malhotra09/pars/internal/store"
	"github.com/Simar-malhotra09/pars/internal/tools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over MCP stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := engine.Config{
		Threads:     chunkio.DefaultWorkers,
		BlockSize:   chunkio.DefaultBlockSize,
		EnableCache: !flagNoCache,
	}
	if flagThreads > 0 {
		cfg.Threads = flagThreads
	}
	if flagBlockSizeKB > 0 {
		cfg.BlockSize = int64(flagBlockSizeKB) * 1024
	}

	s, err := store.Open()
	if err != nil {
		// History is optional for the server; parsing still works.
		slog.Warn("history.open", "err", err)
		s = nil
	}
	if s != nil {
		defer s.Close()
	}

	srv, err := tools.NewServer(s, cfg)
	if err != nil {
		return err
	}
	return srv.MCPServer().Run(cmd.Context(), &mcp.StdioTransport{})
}
