// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/contract-engine/pkg/types"
)

// Rule pairs a clause type with the header pattern that selects it.
type Rule struct {
	Type    types.ClauseType
	Pattern *regexp.Regexp
}

// classifierRules is evaluated top to bottom; the first match wins. Keep
// the order in step with types.ClauseTypes.
var classifierRules = []Rule{
	{types.ClauseEmployeeInfo, regexp.MustCompile(`(?i)gegevens werknemer|employee information|werknemer gegevens`)},
	{types.ClauseContractDetails, regexp.MustCompile(`(?i)gegevens arbeidsovereenkomst|contract details|arbeidsovereenkomst`)},
	{types.ClauseProbation, regexp.MustCompile(`(?i)proeftijd|probation|trial period`)},
	{types.ClauseWorkingHours, regexp.MustCompile(`(?i)werktijden|working hours|plaats werkzaamheden|work location`)},
	{types.ClauseSalary, regexp.MustCompile(`(?i)loon|salaris|vakantietoeslag|salary|wage|compensation`)},
	{types.ClauseVacation, regexp.MustCompile(`(?i)vakantiedagen|vacation days|leave|verlof`)},
	{types.ClausePension, regexp.MustCompile(`(?i)pensioen|pension|retirement`)},
	{types.ClauseTermination, regexp.MustCompile(`(?i)opzegging|termination|notice|beëindiging`)},
	{types.ClauseConfidentiality, regexp.MustCompile(`(?i)geheimhouding|confidentiality|nda|non-disclosure`)},
	{types.ClauseOther, regexp.MustCompile(`(?i)overige|other|additional|aanvullend`)},
}

// Classify returns the clause type whose keywords appear in header, or
// types.ClauseUnclassified when none do. When several types match, the
// one declared first wins.
func Classify(header string) types.ClauseType {
	h := strings.ToLower(header)
	for _, r := range classifierRules {
		if r.Pattern.MatchString(h) {
			return r.Type
		}
	}
	return types.ClauseUnclassified
}

// Rules returns a copy of the classifier table in precedence order.
func Rules() []Rule {
	out := make([]Rule, len(classifierRules))
	copy(out, classifierRules)
	return out
}
