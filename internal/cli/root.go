package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		tableName  string
	)

	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envTable := os.Getenv("POINTS_TABLE")

	cmd := &cobra.Command{
		Use:          "verse-quiz-points",
		Short:        "Score verse quiz answers against a point table",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&tableName, "table", envTable, "point table to use (default from config, else built-in)")
	cmd.AddCommand(NewScoreCmd(&configPath, &tableName))
	cmd.AddCommand(NewScoreFileCmd(&configPath, &tableName))
	cmd.AddCommand(NewBonusCmd(&configPath, &tableName))
	cmd.AddCommand(NewPenaltyCmd(&configPath, &tableName))
	cmd.AddCommand(NewTableCmd(&configPath, &tableName))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewPublishCmd(&configPath))
	cmd.AddCommand(NewListTablesCmd(&configPath))
	return cmd
}
