package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/insights-cli/internal/export"
	"github.com/sells-group/insights-cli/internal/pipeline"
)

var (
	exportEndpoint string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export <question>",
	Short: "Run one analysis and write the result to an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := buildEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Pipeline.Run(ctx, pipeline.Request{
			Query:            args[0],
			ExplicitEndpoint: exportEndpoint,
		})
		if err != nil {
			return eris.Wrap(err, "export")
		}
		if result.Analysis == nil {
			return eris.New("export: query routed to multi-endpoint handling, nothing to export")
		}

		if err := export.WriteXLSX(exportOut, result.Analysis); err != nil {
			return err
		}
		fmt.Printf("wrote %d records to %s\n", len(result.Analysis.Records), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportEndpoint, "endpoint", "", "bypass routing and use this endpoint")
	exportCmd.Flags().StringVar(&exportOut, "out", "analysis.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
