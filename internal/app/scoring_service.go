package app

import (
	"context"
	"fmt"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

// TableRepository abstracts where point tables come from (built-in, file, Postgres, cached in Redis).
type TableRepository interface {
	GetTable(ctx context.Context, name string) (domain.PointTable, error)
}

// LoadEngine fetches a point table once and builds an engine over it.
func LoadEngine(ctx context.Context, repo TableRepository, name string) (*points.Engine, error) {
	if name == "" {
		return nil, domain.ErrEmptyTableName
	}
	table, err := repo.GetTable(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load point table %q: %w", name, err)
	}
	if err := table.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %v", domain.ErrInvalidTable, name, err)
	}
	return points.NewEngine(table.Config), nil
}

// ScoringService contains the scoring use cases.
type ScoringService struct {
	engine *points.Engine
}

func NewScoringService(engine *points.Engine) *ScoringService {
	if engine == nil {
		engine = points.Default()
	}
	return &ScoringService{engine: engine}
}

// Score computes the points for a single event. explain attaches the step breakdown.
func (s *ScoringService) Score(event domain.AnswerEvent, explain bool) domain.ScoreResult {
	b := s.engine.Explain(event.Request())
	result := domain.ScoreResult{Event: event, Points: b.Points}
	if explain {
		result.Breakdown = &b
	}
	return result
}

// ScoreAll scores events in order and totals them.
func (s *ScoringService) ScoreAll(events []domain.AnswerEvent, explain bool) ([]domain.ScoreResult, domain.Summary) {
	results := make([]domain.ScoreResult, 0, len(events))
	summary := domain.Summary{ByQuizType: make(map[points.QuizType]int)}
	for _, event := range events {
		result := s.Score(event, explain)
		results = append(results, result)

		summary.Events++
		if event.Correct {
			summary.Correct++
		} else {
			summary.Incorrect++
		}
		summary.Total += result.Points
		summary.ByQuizType[event.QuizType] += result.Points
	}
	return results, summary
}

// Bonus returns a flat bonus scaled by multiplier.
func (s *ScoringService) Bonus(name string, multiplier float64) int {
	return s.engine.BonusPoints(name, multiplier)
}

// Penalty returns a flat or per-level penalty.
func (s *ScoringService) Penalty(name string, level points.Level) int {
	return s.engine.PenaltyPoints(name, level)
}

// Table exposes a copy of the active point table.
func (s *ScoringService) Table() points.Config {
	return s.engine.Config()
}
