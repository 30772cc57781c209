package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/insights-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "insights-cli",
	Short: "Natural-language front end for geospatial market analysis",
	Long:  "Routes free-text questions to pre-computed market-analysis endpoints, standardizes the results, and reports statistics and narratives.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if c.Scoring.TablePath != "" {
			merged, err := config.LoadScoringTables(c.Scoring.TablePath)
			if err != nil {
				return fmt.Errorf("load scoring tables: %w", err)
			}
			c.Scoring = merged
		}
		if err := config.ValidateScoringConfig(c.Scoring); err != nil {
			return fmt.Errorf("validate scoring config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
