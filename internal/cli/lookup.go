package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"verse-quiz-points/internal/points"
)

// NewBonusCmd prints a flat bonus amount.
func NewBonusCmd(configPath, tableName *string) *cobra.Command {
	var multiplier float64
	cmd := &cobra.Command{
		Use:   "bonus <name>",
		Short: "Print a bonus amount, scaled by --multiplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context(), *configPath, *tableName)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), service.Bonus(args[0], multiplier))
			return err
		},
	}
	cmd.Flags().Float64Var(&multiplier, "multiplier", 1, "bonus multiplier")
	return cmd
}

// NewPenaltyCmd prints a penalty amount.
func NewPenaltyCmd(configPath, tableName *string) *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:   "penalty <name>",
		Short: "Print a penalty amount; incorrectAnswer depends on --level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context(), *configPath, *tableName)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), service.Penalty(args[0], points.Level(level)))
			return err
		},
	}
	cmd.Flags().StringVar(&level, "level", string(points.DefaultLevel), "user level")
	return cmd
}

// NewTableCmd dumps the active point table, e.g. for shop or rules screens.
func NewTableCmd(configPath, tableName *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the active point table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context(), *configPath, *tableName)
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, service.Table())
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}
