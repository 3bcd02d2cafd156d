package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"dsfrGateway/internal/catalog"
)

var validateCatalogPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate a components catalog",
	Example: `  actionctl validate --catalog configs/components.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), validateCatalogPath)
	},
}

func runValidate(out io.Writer, path string) error {
	c, err := catalog.Load(path)
	if err != nil {
		return fmt.Errorf("catalog %s is invalid: %w", path, err)
	}
	summary := c.Summary()
	kinds := make([]string, 0, len(summary))
	for kind := range summary {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	fmt.Fprintf(out, "catalog %s is valid\n", path)
	for _, kind := range kinds {
		fmt.Fprintf(out, "  %s: %d\n", kind, summary[kind])
	}
	return nil
}

func init() {
	validateCmd.Flags().StringVar(&validateCatalogPath, "catalog", "configs/components.yaml", "Path to the components catalog")
	rootCmd.AddCommand(validateCmd)
}
