// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/contract-engine/pkg/types"
)

// ClauseRecord is a stored clause joined with its contract name and the
// data points extracted from it.
type ClauseRecord struct {
	ContractID    int64            `json:"contract_id" yaml:"contract_id"`
	ContractName  string           `json:"contract_name" yaml:"contract_name"`
	SectionNumber string           `json:"section_number" yaml:"section_number"`
	Header        string           `json:"header" yaml:"header"`
	Content       string           `json:"content" yaml:"content"`
	Type          types.ClauseType `json:"clause_type" yaml:"clause_type"`
	Data          types.Fields     `json:"extracted_data" yaml:"extracted_data"`
}

// TypeSummary holds the data points of one clause type in a contract.
type TypeSummary struct {
	Type types.ClauseType `json:"clause_type" yaml:"clause_type"`
	Data types.Fields     `json:"data" yaml:"data"`
}

// Summary describes a stored contract. Types lists only clause types that
// produced at least one data point, in classifier order.
type Summary struct {
	ContractID   int64         `json:"contract_id" yaml:"contract_id"`
	ContractName string        `json:"contract_name" yaml:"contract_name"`
	UploadDate   time.Time     `json:"upload_date" yaml:"upload_date"`
	Processed    bool          `json:"processed" yaml:"processed"`
	TotalClauses int           `json:"total_clauses" yaml:"total_clauses"`
	Types        []TypeSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// KeyValue is one contract's value for a data key.
type KeyValue struct {
	ContractID   int64            `json:"contract_id" yaml:"contract_id"`
	ContractName string           `json:"contract_name" yaml:"contract_name"`
	ClauseType   types.ClauseType `json:"clause_type" yaml:"clause_type"`
	Value        types.Value      `json:"data_value" yaml:"data_value"`
}

// ClausesByType returns every stored clause of the given type, ordered by
// contract id then section number.
func (s *Store) ClausesByType(ctx context.Context, clauseType types.ClauseType) ([]ClauseRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT c.contract_id, ct.contract_name, c.section_number, c.header, c.content,
		       dp.data_key, dp.data_value, dp.data_type
		FROM clauses c
		JOIN contracts ct ON c.contract_id = ct.contract_id
		LEFT JOIN data_points dp
			ON c.contract_id = dp.contract_id AND c.clause_type = dp.clause_type
		WHERE c.clause_type = ?
		ORDER BY c.contract_id, c.section_number, dp.data_key`),
		string(clauseType),
	)
	if err != nil {
		return nil, fmt.Errorf("querying clauses: %w", err)
	}
	defer rows.Close()

	var records []ClauseRecord
	for rows.Next() {
		var (
			r                              ClauseRecord
			name, section, header, content sql.NullString
			key, value, valueKind          sql.NullString
		)
		if err := rows.Scan(&r.ContractID, &name, &section, &header, &content,
			&key, &value, &valueKind); err != nil {
			return nil, fmt.Errorf("scanning clause: %w", err)
		}

		// One row per data point; fold them into the current clause.
		if n := len(records); n == 0 || records[n-1].ContractID != r.ContractID {
			r.ContractName = name.String
			r.SectionNumber = section.String
			r.Header = header.String
			r.Content = content.String
			r.Type = clauseType
			r.Data = types.Fields{}
			records = append(records, r)
		}
		if key.Valid {
			records[len(records)-1].Data[key.String] = types.ParseValue(
				types.ValueKind(valueKind.String), value.String, value.Valid)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading clauses: %w", err)
	}
	return records, nil
}

// ContractSummary returns the stored state of one contract. It returns
// ErrContractNotFound when id has no row.
func (s *Store) ContractSummary(ctx context.Context, id int64) (*Summary, error) {
	var (
		sum       = Summary{ContractID: id}
		name      sql.NullString
		processed sql.NullBool
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT contract_name, upload_date, processed,
		       (SELECT COUNT(*) FROM clauses WHERE contract_id = ?)
		FROM contracts
		WHERE contract_id = ?`),
		id, id,
	).Scan(&name, &sum.UploadDate, &processed, &sum.TotalClauses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrContractNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying contract: %w", err)
	}
	sum.ContractName = name.String
	sum.Processed = processed.Bool

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT c.clause_type, dp.data_key, dp.data_value, dp.data_type
		FROM clauses c
		JOIN data_points dp
			ON c.contract_id = dp.contract_id AND c.clause_type = dp.clause_type
		WHERE c.contract_id = ?`),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying data points: %w", err)
	}
	defer rows.Close()

	byType := make(map[types.ClauseType]types.Fields)
	for rows.Next() {
		var (
			clauseType, key, valueKind string
			value                      sql.NullString
		)
		if err := rows.Scan(&clauseType, &key, &value, &valueKind); err != nil {
			return nil, fmt.Errorf("scanning data point: %w", err)
		}
		t := types.ClauseType(clauseType)
		if byType[t] == nil {
			byType[t] = types.Fields{}
		}
		byType[t][key] = types.ParseValue(types.ValueKind(valueKind), value.String, value.Valid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading data points: %w", err)
	}

	for _, t := range types.ClauseTypes() {
		if data, ok := byType[t]; ok {
			sum.Types = append(sum.Types, TypeSummary{Type: t, Data: data})
		}
	}
	return &sum, nil
}

// ValuesForKey returns every stored value of a data key across contracts,
// ordered by contract name.
func (s *Store) ValuesForKey(ctx context.Context, key string) ([]KeyValue, error) {
	return s.queryKeyValues(ctx, `
		SELECT ct.contract_id, ct.contract_name, c.clause_type, dp.data_value, dp.data_type
		FROM data_points dp
		JOIN clauses c
			ON dp.contract_id = c.contract_id AND dp.clause_type = c.clause_type
		JOIN contracts ct ON c.contract_id = ct.contract_id
		WHERE dp.data_key = ?
		ORDER BY ct.contract_name, ct.contract_id`, key)
}

// CompareKey ranks contracts by a data key. Integer values sort descending;
// values of any other kind rank as zero. Ties break on contract name.
func (s *Store) CompareKey(ctx context.Context, key string) ([]KeyValue, error) {
	return s.queryKeyValues(ctx, `
		SELECT ct.contract_id, ct.contract_name, c.clause_type, dp.data_value, dp.data_type
		FROM data_points dp
		JOIN clauses c
			ON dp.contract_id = c.contract_id AND dp.clause_type = c.clause_type
		JOIN contracts ct ON c.contract_id = ct.contract_id
		WHERE dp.data_key = ?
		ORDER BY CASE WHEN dp.data_type = 'integer' THEN CAST(dp.data_value AS BIGINT) ELSE 0 END DESC,
		         ct.contract_name, ct.contract_id`, key)
}

func (s *Store) queryKeyValues(ctx context.Context, query, key string) ([]KeyValue, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), key)
	if err != nil {
		return nil, fmt.Errorf("querying data key %q: %w", key, err)
	}
	defer rows.Close()

	var values []KeyValue
	for rows.Next() {
		var (
			kv               KeyValue
			name, clauseType sql.NullString
			value, valueKind sql.NullString
		)
		if err := rows.Scan(&kv.ContractID, &name, &clauseType, &value, &valueKind); err != nil {
			return nil, fmt.Errorf("scanning data point: %w", err)
		}
		kv.ContractName = name.String
		kv.ClauseType = types.ClauseType(clauseType.String)
		kv.Value = types.ParseValue(types.ValueKind(valueKind.String), value.String, value.Valid)
		values = append(values, kv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading key values: %w", err)
	}
	return values, nil
}

// ListContracts returns all contracts ordered by id, without raw text.
func (s *Store) ListContracts(ctx context.Context) ([]types.Contract, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT contract_id, contract_name, upload_date, processed
		FROM contracts
		ORDER BY contract_id`)
	if err != nil {
		return nil, fmt.Errorf("querying contracts: %w", err)
	}
	defer rows.Close()

	var contracts []types.Contract
	for rows.Next() {
		var (
			c         types.Contract
			name      sql.NullString
			processed sql.NullBool
		)
		if err := rows.Scan(&c.ID, &name, &c.UploadDate, &processed); err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}
		c.Name = name.String
		c.Processed = processed.Bool
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading contracts: %w", err)
	}
	return contracts, nil
}
