// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/contract-engine/internal/store"
	"github.com/pdiddy/contract-engine/pkg/types"
)

const dateLayout = "2006-01-02 15:04:05"

// PrintSummary writes a contract summary in console form: name, upload
// date, clause count, then each clause type's data points.
func PrintSummary(w io.Writer, sum *store.Summary) {
	fmt.Fprintf(w, "\n%s\nCONTRACT SUMMARY\n%s\n", banner, banner)
	if sum == nil {
		fmt.Fprintf(w, "Name: N/A\nProcessed: N/A\nTotal Clauses: 0\n")
		fmt.Fprintf(w, "\n%s\n\n", banner)
		return
	}

	fmt.Fprintf(w, "Name: %s\n", sum.ContractName)
	fmt.Fprintf(w, "Processed: %s\n", sum.UploadDate.Format(dateLayout))
	fmt.Fprintf(w, "Total Clauses: %d\n", sum.TotalClauses)

	if len(sum.Types) > 0 {
		fmt.Fprintf(w, "\nExtracted Data by Type:\n%s\n", strings.Repeat("-", 60))
		for _, ts := range sum.Types {
			fmt.Fprintf(w, "\n%s:\n", TypeHeading(ts.Type))
			for _, key := range ts.Data.Keys() {
				fmt.Fprintf(w, "  • %s: %s\n", key, ts.Data[key])
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", banner)
}

// TypeHeading renders a clause type as an upper-case heading, e.g.
// "working_hours" becomes "WORKING HOURS".
func TypeHeading(t types.ClauseType) string {
	return cases.Upper(language.Und).String(strings.ReplaceAll(string(t), "_", " "))
}
