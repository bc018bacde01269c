// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List stored contracts",
	RunE:  runContracts,
}

func runContracts(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	contracts, err := s.ListContracts(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, contracts)
	}

	if len(contracts) == 0 {
		fmt.Println("No contracts stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-40s  %-19s  %s\n", "ID", "Name", "Uploaded", "Processed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, c := range contracts {
		fmt.Fprintf(os.Stdout, "%-6d  %-40s  %-19s  %t\n",
			c.ID, c.Name, c.UploadDate.Format("2006-01-02 15:04:05"), c.Processed)
	}
	fmt.Fprintf(os.Stdout, "\n%d contracts\n", len(contracts))
	return nil
}

var contractsDeleteCmd = &cobra.Command{
	Use:   "delete <contract-id>",
	Short: "Delete a contract with its clauses and data points",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractsDelete,
}

func runContractsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseContractID(args[0])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteContract(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted contract %d\n", id)
	return nil
}

func init() {
	contractsCmd.Flags().Bool("json", false, "output results as JSON")
	contractsCmd.AddCommand(contractsDeleteCmd)

	rootCmd.AddCommand(contractsCmd)
}
