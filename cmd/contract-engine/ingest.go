// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/contract-engine/internal/pipeline"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Process contract text files into the store",
	Long: `Ingest segments each contract into numbered clauses, classifies them,
extracts data points, and stores the result. With file arguments only those
files are processed; otherwise every .txt file in --dir is processed in name
order. A file that fails is reported and the run continues.

With --watch, ingest keeps running and processes .txt files as they are
created or written in --dir until interrupted.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.RawDir
	}
	watch, _ := cmd.Flags().GetBool("watch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg.Store, appLog, pipeline.WithOutput(os.Stdout))

	if len(args) > 0 {
		failed := 0
		for _, path := range args {
			if _, err := p.ProcessFile(ctx, path); err != nil {
				fmt.Fprintf(os.Stdout, "failed  %s: %v\n", path, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d file(s) failed", failed)
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating contract directory: %w", err)
	}

	summary, err := p.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nrun %s: %d processed, %d failed (%d total)\n",
		summary.RunID, summary.Processed, summary.Failed, summary.Total())

	if watch {
		fmt.Fprintf(os.Stdout, "watching %s (Ctrl-C to stop)\n", dir)
		return p.Watch(ctx, dir)
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	ingestCmd.Flags().String("dir", "", "directory of .txt contracts (default: raw_dir from config, data/raw)")
	ingestCmd.Flags().Bool("watch", false, "keep watching --dir for new or changed files")

	rootCmd.AddCommand(ingestCmd)
}
