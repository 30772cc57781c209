package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/insights-cli/internal/pipeline"
)

var (
	queryEndpoint  string
	queryJSON      bool
	queryNarrative bool
)

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Answer one analysis question",
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
			ExplicitEndpoint: queryEndpoint,
		})
		if err != nil {
			return eris.Wrap(err, "query")
		}

		if queryJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Print(pipeline.TextSummary(result))

		if queryNarrative && result.Analysis != nil && !result.Analysis.NoData {
			text, err := env.Narrator.Narrate(ctx, result)
			if err != nil {
				zap.L().Warn("narrative generation failed", zap.Error(err))
			} else {
				fmt.Printf("\n%s\n", text)
			}
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryEndpoint, "endpoint", "", "bypass routing and use this endpoint")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "emit the full result as JSON")
	queryCmd.Flags().BoolVar(&queryNarrative, "narrative", false, "append a generated prose narrative")
	rootCmd.AddCommand(queryCmd)
}
