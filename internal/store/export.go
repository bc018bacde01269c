// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportEntry is one contract with its clauses for export.
type ExportEntry struct {
	Summary `yaml:",inline"`
	Clauses []ExportClause `json:"clauses" yaml:"clauses"`
}

// ExportClause holds the clause-level fields included in each export entry.
type ExportClause struct {
	SectionNumber string `json:"section_number" yaml:"section_number"`
	Header        string `json:"header" yaml:"header"`
	Type          string `json:"clause_type" yaml:"clause_type"`
}

// Export writes every stored contract, its clauses, and its extracted data
// to w as YAML or JSON.
func (s *Store) Export(ctx context.Context, w io.Writer, format string) error {
	if format != FormatYAML && format != FormatJSON {
		return fmt.Errorf("unsupported export format %q", format)
	}

	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	}

	_, err = w.Write(data)
	return err
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	contracts, err := s.ListContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, 0, len(contracts))
	for _, c := range contracts {
		sum, err := s.ContractSummary(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("summarizing contract %d: %w", c.ID, err)
		}
		clauses, err := s.contractClauses(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ExportEntry{Summary: *sum, Clauses: clauses})
	}
	return entries, nil
}

func (s *Store) contractClauses(ctx context.Context, contractID int64) ([]ExportClause, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT section_number, header, clause_type
		FROM clauses
		WHERE contract_id = ?
		ORDER BY section_number, clause_type`),
		contractID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying clauses for export: %w", err)
	}
	defer rows.Close()

	clauses := []ExportClause{}
	for rows.Next() {
		var c ExportClause
		if err := rows.Scan(&c.SectionNumber, &c.Header, &c.Type); err != nil {
			return nil, fmt.Errorf("scanning clause: %w", err)
		}
		clauses = append(clauses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading export clauses: %w", err)
	}
	return clauses, nil
}
