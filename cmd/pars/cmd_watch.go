package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Simar-malhotra09/pars/internal/cache"
	"github.com/Simar-malhotra09/pars/internal/engine"
	"github.com/Simar-malhotra09/pars/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse and re-render the call tree whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := checkSourcePath(path); err != nil {
		return err
	}

	cfg := engineConfig(path)
	mem, err := cache.NewMemory(cache.DefaultMemoryEntries)
	if err != nil {
		return err
	}
	cfg.Memory = mem

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(path, cfg, func(res *engine.Result) {
		printResult(res)
		recordRun(res)
	})
	err = w.Run(ctx)
	if ctx.Err() != nil {
		return nil // interrupted by the user
	}
	return err
}
