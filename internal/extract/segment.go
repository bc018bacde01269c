// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/contract-engine/pkg/types"
)

// sectionMarker matches a bold section header such as "**3. Salaris**".
// Group 1 is the section number, group 2 the header text.
var sectionMarker = regexp.MustCompile(`\*\*(\d+)\.?\s+([^*]+?)\s*\*\*`)

// Segment splits contract text into clauses at each section marker. The
// body of a clause is the text up to the next marker. Preamble before the
// first marker is dropped, as are markers whose body is blank. Text
// without markers yields no clauses.
func Segment(text string) []types.Clause {
	text = normalizeSpace(text)
	matches := sectionMarker.FindAllStringSubmatchIndex(text, -1)

	var clauses []types.Clause
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		body := strings.TrimSpace(text[m[1]:end])
		if body == "" {
			continue
		}

		clauses = append(clauses, types.Clause{
			SectionNumber: strings.TrimSpace(text[m[2]:m[3]]),
			Header:        strings.TrimSpace(text[m[4]:m[5]]),
			Content:       body,
		})
	}
	return clauses
}

// normalizeSpace replaces Unicode space separators such as U+00A0 with an
// ASCII space. RE2's \s only matches ASCII whitespace, and text pasted from
// word processors or PDFs often carries non-breaking spaces.
func normalizeSpace(s string) string {
	if strings.IndexFunc(s, isWideSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isWideSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func isWideSpace(r rune) bool {
	return r > unicode.MaxASCII && unicode.Is(unicode.Zs, r)
}
