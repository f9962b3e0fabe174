package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Simar-malhotra09/pars/internal/store"
)

var flagHistoryLimit int

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "List recorded analysis runs, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistory,
	}
	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "maximum runs to list")
	return cmd
}

func runHistory(_ *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	s, err := store.Open()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(path, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, r := range runs {
		roots := strings.Join(r.RootNames, ", ")
		if roots == "" {
			roots = "-"
		}
		fmt.Printf("%s  %s  hash=%s  functions=%d  orphans=%d  roots=[%s]\n",
			r.ParsedAt.Local().Format(time.DateTime), r.Path, r.ContentHash, r.Functions, r.Orphans, roots)
	}
	return nil
}
