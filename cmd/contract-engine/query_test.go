// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/contract-engine/internal/store"
	"github.com/pdiddy/contract-engine/pkg/types"
)

func TestParseContractID(t *testing.T) {
	id, err := parseContractID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := parseContractID(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatKeyValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatKeyValues(&buf, "vacation_days", []store.KeyValue{
		{ContractID: 2, ContractName: "b.txt", ClauseType: types.ClauseVacation, Value: types.Int(25)},
		{ContractID: 1, ContractName: "a.txt", ClauseType: types.ClauseVacation, Value: types.Int(20)},
	}))

	out := buf.String()
	assert.Contains(t, out, "vacation_days")
	assert.Contains(t, out, "b.txt")
	assert.Contains(t, out, "25\n")
	assert.Contains(t, out, "2 results")
}

func TestFormatKeyValuesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatKeyValues(&buf, "pension_fund", nil))
	assert.Equal(t, "No values found for pension_fund.\n", buf.String())
}
