// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/contract-engine/internal/logger"
	"github.com/pdiddy/contract-engine/internal/store"
	"github.com/pdiddy/contract-engine/pkg/types"
)

const sampleContract = `ARBEIDSOVEREENKOMST

**1. Gegevens werknemer**
Geboortedatum: 01-01-1990

**2. Salaris**
€ 3.500,00 per maand

**3. Werktijden**
fulltime, 40 uur per week, dinsdag tot vrijdag

**4. Proeftijd**
Er geldt geen proeftijd

**5. Vakantietoeslag**
€ 250,00 per jaar
`

// --- test helpers ---

func testSetup(t *testing.T) (*Pipeline, *bytes.Buffer, types.StoreConfig) {
	t.Helper()
	cfg := types.StoreConfig{Driver: types.DriverSQLite, DataDir: t.TempDir()}
	var out bytes.Buffer
	return New(cfg, logger.Nop(), WithOutput(&out)), &out, cfg
}

func openStore(t *testing.T, cfg types.StoreConfig) *store.Store {
	t.Helper()
	s, err := store.Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// --- tests ---

func TestProcess(t *testing.T) {
	p, out, cfg := testSetup(t)
	ctx := context.Background()

	id, err := p.Process(ctx, sampleContract, "jansen.txt")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	text := out.String()
	assert.Contains(t, text, "Processing: jansen.txt")
	assert.Contains(t, text, "✓ Contract stored with ID: 1")
	assert.Contains(t, text, "✓ Extracted 5 clauses")
	assert.Contains(t, text, "  [working_hours] Werktijden: 3 fields")
	assert.Contains(t, text, "✓ All clauses stored in database")
	assert.Contains(t, text, "CONTRACT SUMMARY")
	assert.Contains(t, text, "Total Clauses: 4")
	assert.Contains(t, text, "\nWORKING HOURS:\n")
	assert.Contains(t, text, "  • work_days: Dinsdag to Vrijdag")

	s := openStore(t, cfg)
	sum, err := s.ContractSummary(ctx, id)
	require.NoError(t, err)
	assert.True(t, sum.Processed)
	assert.Equal(t, 4, sum.TotalClauses)

	// The later salary clause replaced the earlier one.
	values, err := s.ValuesForKey(ctx, "salary_amount")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, types.String("250,00"), values[0].Value)

	values, err = s.ValuesForKey(ctx, "probation_months")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, types.Int(0), values[0].Value)
}

func TestProcessSameTextTwiceCreatesTwoContracts(t *testing.T) {
	p, _, cfg := testSetup(t)
	ctx := context.Background()

	first, err := p.Process(ctx, sampleContract, "a.txt")
	require.NoError(t, err)
	second, err := p.Process(ctx, sampleContract, "a.txt")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	s := openStore(t, cfg)
	records, err := s.ClausesByType(ctx, types.ClauseWorkingHours)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, records[0].Data, records[1].Data)
}

func TestProcessWithoutMarkers(t *testing.T) {
	p, out, cfg := testSetup(t)
	ctx := context.Background()

	id, err := p.Process(ctx, "Alleen lopende tekst zonder artikelen.", "plain.txt")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Extracted 0 clauses")
	assert.NotContains(t, out.String(), "Extracted Data by Type")

	sum, err := openStore(t, cfg).ContractSummary(ctx, id)
	require.NoError(t, err)
	assert.True(t, sum.Processed)
	assert.Zero(t, sum.TotalClauses)
}

func TestProcessStoreUnavailable(t *testing.T) {
	var out bytes.Buffer
	p := New(types.StoreConfig{Driver: "oracle"}, nil, WithOutput(&out))

	id, err := p.Process(context.Background(), sampleContract, "x.txt")
	assert.True(t, errors.Is(err, store.ErrUnsupportedDriver))
	assert.Zero(t, id)
	assert.Empty(t, out.String())
}

func TestProcessDir(t *testing.T) {
	p, out, cfg := testSetup(t)
	dir := t.TempDir()

	writeFile(t, dir, "b.txt", sampleContract)
	writeFile(t, dir, "a.TXT", "**1. Pensioen**\nEr is geen pensioenregeling.")
	writeFile(t, dir, "notes.md", sampleContract)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.txt"), 0o755))

	summary, err := p.ProcessDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Total())
	assert.False(t, summary.HasFailures())
	assert.Len(t, summary.Contracts, 2)
	_, err = uuid.Parse(summary.RunID)
	assert.NoError(t, err)

	text := out.String()
	first := strings.Index(text, "--- Processing file: a.TXT")
	second := strings.Index(text, "--- Processing file: b.txt")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
	assert.NotContains(t, text, "notes.md")

	contracts, err := openStore(t, cfg).ListContracts(context.Background())
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	assert.Equal(t, "a.TXT", contracts[0].Name)
	assert.Equal(t, "b.txt", contracts[1].Name)
}

func TestProcessDirContinuesAfterFailure(t *testing.T) {
	var out bytes.Buffer
	p := New(types.StoreConfig{Driver: "oracle"}, nil, WithOutput(&out))
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", sampleContract)
	writeFile(t, dir, "b.txt", sampleContract)

	summary, err := p.ProcessDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Processed)
	assert.True(t, summary.HasFailures())
	assert.Contains(t, out.String(), "failed  a.txt")
	assert.Contains(t, out.String(), "failed  b.txt")
}

func TestProcessDirMissing(t *testing.T) {
	p, _, _ := testSetup(t)
	_, err := p.ProcessDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestProcessDirCancelled(t *testing.T) {
	p, _, _ := testSetup(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", sampleContract)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := p.ProcessDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Total())
}
