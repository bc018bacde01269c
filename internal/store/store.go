// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists contracts, their clauses, and extracted data points
// in a relational database (SQLite or PostgreSQL).
//
// Writes are upserts: a contract holds at most one clause per clause type
// and at most one data point per (clause type, key), so re-processing a
// document overwrites rather than accumulates. Deleting a contract cascades
// to its clauses and data points.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/contract-engine/internal/logger"
	"github.com/pdiddy/contract-engine/pkg/types"
)

var (
	// ErrContractNotFound is returned when a contract id has no row.
	ErrContractNotFound = errors.New("contract not found")

	// ErrUnsupportedDriver is returned by Open for unknown drivers.
	ErrUnsupportedDriver = errors.New("unsupported store driver")
)

// Store manages the contract database.
type Store struct {
	db     *sql.DB
	driver types.StoreDriver
	log    *logger.Logger
}

// Open connects to the database described by cfg and creates the schema
// if it does not exist. The caller must Close the store.
func Open(cfg types.StoreConfig, log *logger.Logger) (*Store, error) {
	cfg = cfg.WithDefaults()

	var driverName string
	switch cfg.Driver {
	case types.DriverSQLite:
		if cfg.DSN == "" {
			if err := os.MkdirAll(filepath.Join(cfg.DataDir, "index"), 0o755); err != nil {
				return nil, fmt.Errorf("creating index directory: %w", err)
			}
		}
		driverName = "sqlite3"
	case types.DriverPostgres:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := sql.Open(driverName, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:     db,
		driver: cfg.Driver,
		log:    logger.OrNop(log).With("driver", string(cfg.Driver)),
	}

	if cfg.Driver == types.DriverSQLite {
		// One connection keeps the foreign_keys pragma in effect for
		// every statement.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	contractID := "contract_id INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == types.DriverPostgres {
		contractID = "contract_id SERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS contracts (
			` + contractID + `,
			contract_name VARCHAR(255),
			upload_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			raw_text TEXT,
			processed BOOLEAN DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS clauses (
			contract_id INTEGER REFERENCES contracts(contract_id) ON DELETE CASCADE,
			section_number VARCHAR(10),
			header TEXT,
			content TEXT,
			clause_type VARCHAR(50),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (contract_id, clause_type)
		)`,
		`CREATE TABLE IF NOT EXISTS data_points (
			contract_id INTEGER REFERENCES contracts(contract_id) ON DELETE CASCADE,
			clause_type VARCHAR(50),
			data_key VARCHAR(100) NOT NULL,
			data_value TEXT,
			data_type VARCHAR(20),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (contract_id, clause_type, data_key),
			FOREIGN KEY (contract_id, clause_type) REFERENCES clauses(contract_id, clause_type) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contract_id ON clauses(contract_id)`,
		`CREATE INDEX IF NOT EXISTS idx_clause_type ON clauses(clause_type)`,
		`CREATE INDEX IF NOT EXISTS idx_data_points_contract ON data_points(contract_id)`,
		`CREATE INDEX IF NOT EXISTS idx_data_points_clause_type ON data_points(clause_type)`,
		`CREATE INDEX IF NOT EXISTS idx_data_points_key ON data_points(data_key)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != types.DriverPostgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateContract inserts a contract row and commits it. The row is
// visible even if later clause storage fails.
func (s *Store) CreateContract(ctx context.Context, name, rawText string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO contracts (contract_name, raw_text) VALUES (?, ?)
		 RETURNING contract_id`),
		name, rawText,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting contract: %w", err)
	}
	s.log.Debug("contract created", "contract_id", id, "contract_name", name)
	return id, nil
}

// UpsertClauses stores clauses and their fields for one contract in a
// single transaction. A clause replaces any earlier clause of the same
// type, and its data points replace the earlier clause's data points.
// On error nothing from this call is visible.
func (s *Store) UpsertClauses(ctx context.Context, contractID int64, clauses []types.Clause) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	clauseStmt, err := tx.PrepareContext(ctx, s.rebind(
		`INSERT INTO clauses (contract_id, section_number, header, content, clause_type)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (contract_id, clause_type) DO UPDATE SET
			section_number = excluded.section_number,
			header = excluded.header,
			content = excluded.content,
			created_at = excluded.created_at`))
	if err != nil {
		return fmt.Errorf("preparing clause upsert: %w", err)
	}
	defer clauseStmt.Close()

	pointStmt, err := tx.PrepareContext(ctx, s.rebind(
		`INSERT INTO data_points (contract_id, clause_type, data_key, data_value, data_type)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (contract_id, clause_type, data_key) DO UPDATE SET
			data_value = excluded.data_value,
			data_type = excluded.data_type,
			created_at = excluded.created_at`))
	if err != nil {
		return fmt.Errorf("preparing data point upsert: %w", err)
	}
	defer pointStmt.Close()

	for _, c := range clauses {
		clauseType := c.Type
		if clauseType == "" {
			clauseType = types.ClauseUnclassified
		}

		if _, err := clauseStmt.ExecContext(ctx,
			contractID, c.SectionNumber, c.Header, c.Content, string(clauseType),
		); err != nil {
			return fmt.Errorf("upserting clause %s (%s): %w", c.SectionNumber, clauseType, err)
		}

		keys := c.Fields.Keys()
		if err := s.pruneDataPoints(ctx, tx, contractID, clauseType, keys); err != nil {
			return err
		}

		for _, key := range keys {
			v := c.Fields[key]
			text, ok := v.Text()
			value := sql.NullString{String: text, Valid: ok}
			if _, err := pointStmt.ExecContext(ctx,
				contractID, string(clauseType), key, value, string(v.Kind()),
			); err != nil {
				return fmt.Errorf("upserting data point %s.%s: %w", clauseType, key, err)
			}
		}

		s.log.Debug("clause stored",
			"contract_id", contractID, "clause_type", string(clauseType), "fields", len(keys))
	}

	return tx.Commit()
}

// pruneDataPoints deletes data points of (contractID, clauseType) whose key
// is not in keep, so an overwritten clause leaves no stale fields behind.
func (s *Store) pruneDataPoints(ctx context.Context, tx *sql.Tx, contractID int64, clauseType types.ClauseType, keep []string) error {
	query := `DELETE FROM data_points WHERE contract_id = ? AND clause_type = ?`
	args := []any{contractID, string(clauseType)}
	if len(keep) > 0 {
		query += ` AND data_key NOT IN (?` + strings.Repeat(`, ?`, len(keep)-1) + `)`
		for _, k := range keep {
			args = append(args, k)
		}
	}
	if _, err := tx.ExecContext(ctx, s.rebind(query), args...); err != nil {
		return fmt.Errorf("pruning data points for %s: %w", clauseType, err)
	}
	return nil
}

// MarkProcessed flags a contract as fully stored.
func (s *Store) MarkProcessed(ctx context.Context, contractID int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE contracts SET processed = TRUE WHERE contract_id = ?`), contractID)
	if err != nil {
		return fmt.Errorf("marking contract processed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrContractNotFound, contractID)
	}
	return nil
}

// DeleteContract removes a contract; its clauses and data points go with it.
func (s *Store) DeleteContract(ctx context.Context, contractID int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM contracts WHERE contract_id = ?`), contractID)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrContractNotFound, contractID)
	}
	s.log.Info("contract deleted", "contract_id", contractID)
	return nil
}
