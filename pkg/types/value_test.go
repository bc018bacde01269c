// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestValueText(t *testing.T) {
	tests := []struct {
		name     string
		v        Value
		wantText string
		wantOK   bool
		wantKind ValueKind
	}{
		{"bool true", Bool(true), "true", true, KindBoolean},
		{"bool false", Bool(false), "false", true, KindBoolean},
		{"int", Int(40), "40", true, KindInteger},
		{"negative int", Int(-2), "-2", true, KindInteger},
		{"float", Float(0.8), "0.8", true, KindFloat},
		{"string", String("3.500,00"), "3.500,00", true, KindString},
		{"null", Null(), "", false, KindString},
		{"zero value", Value{}, "", false, KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := tt.v.Text()
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKind, tt.v.Kind())
			assert.Equal(t, !tt.wantOK, tt.v.IsNull())
		})
	}
}

func TestParseValueRestoresStoredForm(t *testing.T) {
	for _, v := range []Value{Bool(true), Int(0), Int(25), Float(1.5), String("monthly"), Null()} {
		text, ok := v.Text()
		assert.Equal(t, v, ParseValue(v.Kind(), text, ok), v.GoString())
	}
}

func TestParseValueFallsBackToString(t *testing.T) {
	assert.Equal(t, String("twee"), ParseValue(KindInteger, "twee", true))
	assert.Equal(t, String("ja"), ParseValue(KindBoolean, "ja", true))
}

func TestValueAccessors(t *testing.T) {
	n, ok := Int(3).IntValue()
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	_, ok = String("3").IntValue()
	assert.False(t, ok)

	b, ok := Bool(true).BoolValue()
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, "null", Null().String())
	assert.Nil(t, Null().Native())
}

func TestFieldsMarshalAsNativeScalars(t *testing.T) {
	f := Fields{
		"probation_period": String("No"),
		"probation_months": Int(0),
		"remote_work":      Bool(true),
		"end_date":         Null(),
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"end_date":null,"probation_months":0,"probation_period":"No","remote_work":true}`,
		string(data))

	out, err := yaml.Marshal(f)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, 0, back["probation_months"])
	assert.Equal(t, true, back["remote_work"])
	assert.Nil(t, back["end_date"])
}

func TestFieldsKeysSorted(t *testing.T) {
	f := Fields{"b": Int(1), "a": Int(2), "c": Int(3)}
	assert.Equal(t, []string{"a", "b", "c"}, f.Keys())
	assert.Empty(t, Fields(nil).Keys())
}

func TestParseClauseType(t *testing.T) {
	for _, ct := range append(ClauseTypes(), ClauseUnclassified) {
		got, err := ParseClauseType(string(ct))
		require.NoError(t, err)
		assert.Equal(t, ct, got)
	}

	_, err := ParseClauseType("bonus")
	assert.True(t, errors.Is(err, ErrUnknownClauseType))
}

func TestStoreConfigConnString(t *testing.T) {
	lite := StoreConfig{DataDir: "/tmp/x"}
	assert.Equal(t,
		filepath.Join("/tmp/x", "index", "contracts.db")+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000",
		lite.ConnString())

	pg := StoreConfig{Driver: DriverPostgres, User: "hr", Password: "s3cret", Host: "db", Port: "5433"}
	assert.Equal(t, "postgres://hr:s3cret@db:5433/contracts?sslmode=disable", pg.ConnString())

	override := StoreConfig{Driver: DriverPostgres, DSN: "postgres://elsewhere/db"}
	assert.Equal(t, "postgres://elsewhere/db", override.ConnString())
}

func TestStoreConfigWithDefaults(t *testing.T) {
	cfg := StoreConfig{}.WithDefaults()
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "5432", cfg.Port)
}
