package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

// NewScoreCmd scores a single answer given on the command line.
func NewScoreCmd(configPath, tableName *string) *cobra.Command {
	var (
		event   domain.AnswerEvent
		quiz    string
		level   string
		explain bool
		format  string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one quiz answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context(), *configPath, *tableName)
			if err != nil {
				return err
			}
			event.QuizType = points.QuizType(quiz)
			event.Level = points.Level(level)
			result := service.Score(event, explain)
			if !explain && format == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Points)
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, result)
		},
	}
	cmd.Flags().StringVar(&quiz, "type", string(points.FillBlank), "quiz type")
	cmd.Flags().StringVar(&level, "level", string(points.Beginner), "user level")
	cmd.Flags().BoolVar(&event.Correct, "correct", true, "whether the answer was correct")
	cmd.Flags().Float64Var(&event.TimeTaken, "time", 0, "seconds taken; 0 when not measured")
	cmd.Flags().BoolVar(&event.Perfect, "perfect", false, "every answer in the session was correct")
	cmd.Flags().BoolVar(&event.PersonalVerse, "personal", false, "question came from the personal verse bank")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the scoring breakdown")
	cmd.Flags().StringVar(&format, "format", "", "output format for structured output: yaml or json")
	return cmd
}

type batchOutput struct {
	Results []domain.ScoreResult `yaml:"results" json:"results"`
	Summary domain.Summary       `yaml:"summary" json:"summary"`
}

// NewScoreFileCmd scores a YAML or JSON list of answer events.
func NewScoreFileCmd(configPath, tableName *string) *cobra.Command {
	var (
		explain bool
		format  string
	)
	cmd := &cobra.Command{
		Use:   "score-file <path>",
		Short: "Score a list of answer events from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var events []domain.AnswerEvent
			if err := yaml.Unmarshal(data, &events); err != nil {
				return fmt.Errorf("decode events: %w", err)
			}
			service, err := loadService(cmd.Context(), *configPath, *tableName)
			if err != nil {
				return err
			}
			results, summary := service.ScoreAll(events, explain)
			return writeFormatted(cmd.OutOrStdout(), format, batchOutput{Results: results, Summary: summary})
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "include the scoring breakdown per event")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}
