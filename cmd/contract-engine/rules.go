// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/contract-engine/internal/extract"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the clause classification rules in precedence order",
	Long: `Rules prints the header patterns used to classify clauses. A header is
tested against each pattern from top to bottom and takes the first type that
matches; headers matching none are unclassified.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "%-4s  %-18s  %s\n", "Rank", "Type", "Pattern")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
		for i, r := range extract.Rules() {
			fmt.Fprintf(os.Stdout, "%-4d  %-18s  %s\n", i+1, r.Type, r.Pattern)
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
