package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Simar-malhotra09/pars/internal/config"
	"github.com/Simar-malhotra09/pars/internal/engine"
	"github.com/Simar-malhotra09/pars/internal/store"
)

var version = "dev"

var (
	flagThreads     int
	flagBlockSizeKB int
	flagNoCache     bool
	flagJSON        bool
	flagVerbose     bool
)

func main() {
	root := &cobra.Command{
		Use:     "pars <file>",
		Short:   "Heuristic call-graph extractor for single source files",
		Long:    "pars scans one source file (.py or .rs) with lexical heuristics, builds a call graph, and renders a cycle-safe call tree plus an orphan report. Results are cached next to the file and invalidated on any change.",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	root.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker threads for chunked reading (default from .parsrc or 8)")
	root.PersistentFlags().IntVar(&flagBlockSizeKB, "block-size-kb", 0, "chunk size in KiB for chunked reading (default from .parsrc or 16)")
	root.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "skip the on-disk parse cache")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.Flags().BoolVar(&flagJSON, "json", false, "emit the result as JSON")

	root.AddCommand(newWatchCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newHistoryCmd())

	cobra.OnInitialize(setupLogging)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pars:", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// engineConfig merges .parsrc defaults with CLI flag overrides.
func engineConfig(path string) engine.Config {
	cfg := config.Load(filepath.Dir(path))
	ec := engine.Config{
		Threads:     cfg.EffectiveThreads(),
		BlockSize:   cfg.EffectiveBlockSize(),
		EnableCache: cfg.EffectiveCache(),
	}
	if flagThreads > 0 {
		ec.Threads = flagThreads
	}
	if flagBlockSizeKB > 0 {
		ec.BlockSize = int64(flagBlockSizeKB) * 1024
	}
	if flagNoCache {
		ec.EnableCache = false
	}
	return ec
}

// checkSourcePath enforces the collaborator contract: the path must exist
// and be a regular file before the engine sees it.
func checkSourcePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := checkSourcePath(path); err != nil {
		return err
	}

	res, err := engine.ParseFile(cmd.Context(), path, engineConfig(path))
	if err != nil {
		return err
	}
	recordRun(res)

	if flagJSON {
		return printJSON(res)
	}
	printResult(res)
	return nil
}

// recordRun appends the run to the history database, best-effort.
func recordRun(res *engine.Result) {
	s, err := store.Open()
	if err != nil {
		slog.Warn("history.open", "err", err)
		return
	}
	defer s.Close()
	run := store.Run{
		Path:        res.Path,
		ContentHash: fmt.Sprintf("%016x", res.ContentHash),
		Functions:   len(res.Graph),
		Roots:       len(res.Roots),
		Orphans:     len(res.Orphans),
		RootNames:   res.Roots,
	}
	if err := s.RecordRun(run); err != nil {
		slog.Warn("history.record", "err", err)
	}
}

func printResult(res *engine.Result) {
	cached := ""
	if res.FromCache {
		cached = ", cached"
	}
	fmt.Printf("%s (%s, %d bytes, %d functions%s, %s)\n",
		res.Path, res.Language, res.Size, len(res.Graph), cached, res.Elapsed.Round(time.Microsecond))

	if res.Tree != "" {
		fmt.Println()
		fmt.Print(res.Tree)
	}
	if len(res.Orphans) > 0 {
		fmt.Println("\nOrphans (unreached from any root):")
		for _, o := range res.Orphans {
			fmt.Printf("  %s (line %d)\n", o.Name, o.Line)
		}
	}
}

func printJSON(res *engine.Result) error {
	out := map[string]any{
		"path":       res.Path,
		"language":   res.Language,
		"size":       res.Size,
		"from_cache": res.FromCache,
		"functions":  res.Graph,
		"roots":      res.Roots,
		"orphans":    res.Orphans,
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
