// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/contract-engine/internal/pipeline"
	"github.com/pdiddy/contract-engine/internal/store"
	"github.com/pdiddy/contract-engine/pkg/types"
)

// --- clauses ---

var clausesCmd = &cobra.Command{
	Use:   "clauses <clause-type>",
	Short: "List stored clauses of one type across contracts",
	Long: `Clauses prints every stored clause of the given type with its contract
and extracted data, ordered by contract id then section number.

Clause types: employee_info, contract_details, probation, working_hours,
salary, vacation, pension, termination, confidentiality, other, unclassified.`,
	Args: cobra.ExactArgs(1),
	RunE: runClauses,
}

func runClauses(cmd *cobra.Command, args []string) error {
	clauseType, err := types.ParseClauseType(args[0])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.ClausesByType(context.Background(), clauseType)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, records)
	}

	if len(records) == 0 {
		fmt.Println("No clauses found.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(os.Stdout, "[%d] %s  §%s %s\n", r.ContractID, r.ContractName, r.SectionNumber, r.Header)
		for _, key := range r.Data.Keys() {
			fmt.Fprintf(os.Stdout, "  • %s: %s\n", key, r.Data[key])
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d clauses\n", len(records))
	return nil
}

// --- summary ---

var summaryCmd = &cobra.Command{
	Use:   "summary <contract-id>",
	Short: "Print the summary of a stored contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	id, err := parseContractID(args[0])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := s.ContractSummary(context.Background(), id)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, sum)
	}
	pipeline.PrintSummary(os.Stdout, sum)
	return nil
}

// --- values / compare ---

var valuesCmd = &cobra.Command{
	Use:   "values <data-key>",
	Short: "List every contract's value for a data key",
	Long: `Values prints the stored value of a data key (for example
salary_amount or vacation_days) for each contract, ordered by contract name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeyQuery(cmd, args[0], (*store.Store).ValuesForKey)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <data-key>",
	Short: "Rank contracts by a data key",
	Long: `Compare ranks contracts by the value of a data key. Integer values
sort highest first; values of any other kind rank as zero. Ties are broken
by contract name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeyQuery(cmd, args[0], (*store.Store).CompareKey)
	},
}

type keyQuery func(*store.Store, context.Context, string) ([]store.KeyValue, error)

func runKeyQuery(cmd *cobra.Command, key string, query keyQuery) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	values, err := query(s, context.Background(), key)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, values)
	}
	return formatKeyValues(os.Stdout, key, values)
}

func formatKeyValues(w io.Writer, key string, values []store.KeyValue) error {
	if len(values) == 0 {
		fmt.Fprintf(w, "No values found for %s.\n", key)
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-6s  %-40s  %-16s  %s\n", "Rank", "ID", "Contract", "Clause", key)
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for i, v := range values {
		name := v.ContractName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-6d  %-40s  %-16s  %s\n", i+1, v.ContractID, name, v.ClauseType, v.Value)
	}
	fmt.Fprintf(w, "\n%d results\n", len(values))
	return nil
}

// --- shared helpers ---

func parseContractID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contract id %q", s)
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{clausesCmd, summaryCmd, valuesCmd, compareCmd} {
		c.Flags().Bool("json", false, "output results as JSON")
		rootCmd.AddCommand(c)
	}
}
