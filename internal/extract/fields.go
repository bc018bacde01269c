// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/contract-engine/pkg/types"
)

// ruleSet extracts the fields of one clause type from its body text.
type ruleSet func(body string) types.Fields

// ruleSets dispatches on clause type. Unclassified clauses have no entry.
var ruleSets = map[types.ClauseType]ruleSet{
	types.ClauseEmployeeInfo:    employeeInfoFields,
	types.ClauseSalary:          salaryFields,
	types.ClauseVacation:        vacationFields,
	types.ClauseWorkingHours:    workingHoursFields,
	types.ClauseProbation:       probationFields,
	types.ClauseContractDetails: contractDetailsFields,
	types.ClausePension:         pensionFields,
	types.ClauseTermination:     terminationFields,
	types.ClauseConfidentiality: confidentialityFields,
	types.ClauseOther:           otherFields,
}

// Fields runs the rule set for t against body. It returns an empty,
// non-nil map when t has no rule set or nothing matched. Unicode spaces in
// body are matched as ASCII spaces.
func Fields(t types.ClauseType, body string) types.Fields {
	rs, ok := ruleSets[t]
	if !ok {
		return types.Fields{}
	}
	return rs(normalizeSpace(body))
}

// flag sets key to true when its pattern occurs in the body.
type flag struct {
	key     string
	pattern *regexp.Regexp
}

func applyFlags(fields types.Fields, body string, flags []flag) {
	for _, f := range flags {
		if f.pattern.MatchString(body) {
			fields[f.key] = types.Bool(true)
		}
	}
}

// submatch returns the first non-empty capture group of re in s. Patterns
// with alternated groups ("(\d+) days|(\d+) dagen") report whichever side
// matched.
func submatch(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return g, true
		}
	}
	return "", false
}

// intSubmatch is submatch followed by an integer parse. A capture that
// overflows int64 counts as no match.
func intSubmatch(re *regexp.Regexp, s string) (int64, bool) {
	g, ok := submatch(re, s)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(g, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// capitalize upper-cases the first letter and lower-cases the rest. A
// Caser holds state, so each call gets its own.
func capitalize(s string) string {
	return cases.Title(language.Und).String(strings.ToLower(s))
}

// firstDate tries each date shape in order after the given anchor and
// returns the first capture found.
func firstDate(anchors []*regexp.Regexp, body string) (string, bool) {
	for _, re := range anchors {
		if m := re.FindStringSubmatch(body); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// anchoredDates builds one pattern per date shape, each preceded by prefix.
func anchoredDates(prefix string) []*regexp.Regexp {
	shapes := []string{
		// worded: "1 januari 2024"
		`(\d{1,2}\s+[\p{L}\d_]+\s+\d{4})`,
		// numeric: "01-01-2024", "1/1/2024"
		`(\d{1,2}[-/]\d{1,2}[-/]\d{4})`,
	}
	out := make([]*regexp.Regexp, len(shapes))
	for i, shape := range shapes {
		out[i] = regexp.MustCompile(`(?i)` + prefix + shape)
	}
	return out
}
