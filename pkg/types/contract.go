// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"time"
)

// ClauseType tags a clause with one of the fixed employment-contract
// clause categories.
type ClauseType string

const (
	ClauseEmployeeInfo    ClauseType = "employee_info"
	ClauseContractDetails ClauseType = "contract_details"
	ClauseProbation       ClauseType = "probation"
	ClauseWorkingHours    ClauseType = "working_hours"
	ClauseSalary          ClauseType = "salary"
	ClauseVacation        ClauseType = "vacation"
	ClausePension         ClauseType = "pension"
	ClauseTermination     ClauseType = "termination"
	ClauseConfidentiality ClauseType = "confidentiality"
	ClauseOther           ClauseType = "other"

	// ClauseUnclassified is assigned when no header keyword matches.
	// Unclassified clauses are stored but carry no fields.
	ClauseUnclassified ClauseType = "unclassified"
)

// ErrUnknownClauseType is returned by ParseClauseType for tags outside
// the taxonomy.
var ErrUnknownClauseType = errors.New("unknown clause type")

// ClauseTypes returns the classified tags in declaration order. The order
// is the classifier's precedence order.
func ClauseTypes() []ClauseType {
	return []ClauseType{
		ClauseEmployeeInfo,
		ClauseContractDetails,
		ClauseProbation,
		ClauseWorkingHours,
		ClauseSalary,
		ClauseVacation,
		ClausePension,
		ClauseTermination,
		ClauseConfidentiality,
		ClauseOther,
	}
}

// ParseClauseType validates s as a clause type tag, including
// "unclassified".
func ParseClauseType(s string) (ClauseType, error) {
	t := ClauseType(s)
	if t == ClauseUnclassified {
		return t, nil
	}
	for _, known := range ClauseTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClauseType, s)
}

// Clause is one numbered section of a contract document.
type Clause struct {
	// SectionNumber is the label from the section marker (e.g. "3").
	SectionNumber string `json:"section_number" yaml:"section_number"`

	// Header is the section title text.
	Header string `json:"header" yaml:"header"`

	// Content is the body text between this marker and the next.
	Content string `json:"content" yaml:"content"`

	// Type is assigned by the classifier. Empty until classified.
	Type ClauseType `json:"clause_type" yaml:"clause_type"`

	// Fields holds the extracted data points. Empty for unclassified
	// clauses or when no rule fired.
	Fields Fields `json:"extracted_data" yaml:"extracted_data"`
}

// Contract is one ingested contract document.
type Contract struct {
	ID         int64     `json:"contract_id" yaml:"contract_id"`
	Name       string    `json:"contract_name" yaml:"contract_name"`
	UploadDate time.Time `json:"upload_date" yaml:"upload_date"`
	RawText    string    `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
	Processed  bool      `json:"processed" yaml:"processed"`
}
