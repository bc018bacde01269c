// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BatchSummary holds counts from a directory run.
type BatchSummary struct {
	RunID     string
	Processed int
	Failed    int
	Contracts []int64
}

// Total returns the number of files attempted.
func (s BatchSummary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any file failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// isContractFile reports whether name is a plain-text contract.
func isContractFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".txt")
}

// ProcessDir processes every .txt file in dir in name order. A file that
// fails is reported and counted; the run continues with the next file.
func (p *Pipeline) ProcessDir(ctx context.Context, dir string) (BatchSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading contract directory %s: %w", dir, err)
	}

	summary := BatchSummary{RunID: uuid.New().String()}
	log := p.log.With("run_id", summary.RunID, "dir", dir)
	log.Info("batch started")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if entry.IsDir() || !isContractFile(entry.Name()) {
			continue
		}

		fmt.Fprintf(p.out, "\n--- Processing file: %s\n", entry.Name())
		id, err := p.ProcessFile(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(p.out, "failed  %s: %v\n", entry.Name(), err)
			log.Error("file failed", "file", entry.Name(), "error", err)
			summary.Failed++
			continue
		}
		summary.Processed++
		summary.Contracts = append(summary.Contracts, id)
	}

	log.Info("batch finished", "processed", summary.Processed, "failed", summary.Failed)
	return summary, nil
}

// ProcessFile reads path and processes it as a contract named after the
// file's base name.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Process(ctx, string(data), filepath.Base(path))
}
