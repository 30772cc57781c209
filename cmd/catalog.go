package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/insights-cli/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the analysis endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range catalog.Entries() {
			fmt.Printf("%-30s %-22s %s\n", e.Path, e.Processor, e.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
