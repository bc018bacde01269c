// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs contract documents through segmentation,
// classification, field extraction, and storage.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/contract-engine/internal/extract"
	"github.com/pdiddy/contract-engine/internal/logger"
	"github.com/pdiddy/contract-engine/internal/store"
	"github.com/pdiddy/contract-engine/pkg/types"
)

var banner = strings.Repeat("=", 60)

// Pipeline processes contracts into a store. Each document gets its own
// store connection, released before Process returns.
type Pipeline struct {
	cfg    types.StoreConfig
	log    *logger.Logger
	out    io.Writer
	settle time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOutput sets where progress and summaries are written. The default
// is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.out = w }
}

// New returns a Pipeline that stores into the database described by cfg.
func New(cfg types.StoreConfig, log *logger.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		log:    logger.OrNop(log),
		out:    os.Stdout,
		settle: defaultSettleDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process stores text as a contract named name: it creates the contract
// row, extracts clauses and fields, upserts them, marks the contract
// processed, and prints its summary. It returns the contract id.
//
// The contract row is committed before clauses are stored. If a later step
// fails, the returned id is non-zero and the row remains unprocessed.
func (p *Pipeline) Process(ctx context.Context, text, name string) (int64, error) {
	s, err := store.Open(p.cfg, p.log)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	log := p.log.With("contract_name", name)

	fmt.Fprintf(p.out, "\n%s\nProcessing: %s\n%s\n\n", banner, name, banner)

	id, err := s.CreateContract(ctx, name, text)
	if err != nil {
		return 0, err
	}
	log = log.With("contract_id", id)
	fmt.Fprintf(p.out, "✓ Contract stored with ID: %d\n", id)

	clauses := extract.Segment(text)
	fmt.Fprintf(p.out, "✓ Extracted %d clauses\n", len(clauses))
	if len(clauses) == 0 {
		log.Warn("no section markers found")
	}

	fmt.Fprintf(p.out, "\nClassifying and extracting data...\n")
	extract.Annotate(clauses)
	for _, c := range clauses {
		if len(c.Fields) > 0 {
			fmt.Fprintf(p.out, "  [%s] %s: %d fields\n", c.Type, c.Header, len(c.Fields))
		}
	}

	if err := s.UpsertClauses(ctx, id, clauses); err != nil {
		log.Error("storing clauses failed", "error", err)
		return id, fmt.Errorf("storing clauses for %s: %w", name, err)
	}
	if err := s.MarkProcessed(ctx, id); err != nil {
		return id, err
	}
	fmt.Fprintf(p.out, "\n✓ All clauses stored in database\n")
	log.Info("contract processed", "clauses", len(clauses))

	sum, err := s.ContractSummary(ctx, id)
	if err != nil {
		return id, err
	}
	PrintSummary(p.out, sum)

	return id, nil
}
