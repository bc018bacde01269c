// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/contract-engine/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all contracts and their extracted data to YAML or JSON",
	Long: `Export writes every stored contract with its clauses and per-type data
points. Output goes to stdout unless --out names a file.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	if format != store.FormatYAML && format != store.FormatJSON {
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	if err := s.Export(context.Background(), w, format); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", outPath)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", store.FormatYAML, "output format: yaml or json")
	exportCmd.Flags().String("out", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
