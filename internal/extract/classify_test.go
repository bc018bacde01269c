// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/contract-engine/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		header string
		want   types.ClauseType
	}{
		{"Gegevens werknemer", types.ClauseEmployeeInfo},
		{"Employee Information", types.ClauseEmployeeInfo},
		{"Gegevens arbeidsovereenkomst", types.ClauseContractDetails},
		{"Contract Details", types.ClauseContractDetails},
		{"Proeftijd", types.ClauseProbation},
		{"Trial period", types.ClauseProbation},
		{"Werktijden", types.ClauseWorkingHours},
		{"Plaats werkzaamheden", types.ClauseWorkingHours},
		{"SALARIS", types.ClauseSalary},
		{"Compensation", types.ClauseSalary},
		{"Vakantiedagen", types.ClauseVacation},
		{"Verlof", types.ClauseVacation},
		{"Pensioen", types.ClausePension},
		{"Retirement", types.ClausePension},
		{"Opzegging", types.ClauseTermination},
		{"Beëindiging", types.ClauseTermination},
		{"Geheimhouding", types.ClauseConfidentiality},
		{"Non-disclosure", types.ClauseConfidentiality},
		{"Overige bepalingen", types.ClauseOther},
		{"Aanvullende arbeidsvoorwaarden", types.ClauseOther},
		{"Ondertekening", types.ClauseUnclassified},
		{"", types.ClauseUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.header))
		})
	}
}

func TestClassifyEarlierTypeWins(t *testing.T) {
	tests := []struct {
		header string
		want   types.ClauseType
	}{
		{"Proeftijd en opzegging", types.ClauseProbation},
		{"Salary and leave", types.ClauseSalary},
		{"Employee information and salary", types.ClauseEmployeeInfo},
		{"Pension notice", types.ClausePension},
		{"Working hours and other matters", types.ClauseWorkingHours},
		{"Opzegging en geheimhouding", types.ClauseTermination},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.header))
		})
	}
}

func TestRulesFollowDeclarationOrder(t *testing.T) {
	rules := Rules()
	var got []types.ClauseType
	for _, r := range rules {
		got = append(got, r.Type)
	}
	assert.Equal(t, types.ClauseTypes(), got)

	// Mutating the copy leaves the classifier untouched.
	rules[0] = Rule{Type: types.ClauseOther, Pattern: rules[9].Pattern}
	assert.Equal(t, types.ClauseEmployeeInfo, Classify("Gegevens werknemer"))
}
