package points

import "math"

// Request is a single answer event to score.
type Request struct {
	QuizType  QuizType
	Correct   bool
	Level     Level
	TimeTaken float64 // seconds; 0 means not measured
	Perfect   bool
	// Progress is accepted for callers that track sessions. Scoring does not read it.
	Progress      any
	PersonalVerse bool
}

// TimeRule names the timing adjustment applied to a score.
type TimeRule string

const (
	TimeRuleNone    TimeRule = ""
	TimeRuleSpeed   TimeRule = "speed"
	TimeRuleTooFast TimeRule = "too-fast"
)

// Breakdown records each step of a score computation.
type Breakdown struct {
	QuizType       QuizType  `json:"quizType" yaml:"quizType"`
	Level          Level     `json:"level" yaml:"level"`
	BasePoints     int       `json:"basePoints" yaml:"basePoints"`
	UnknownType    bool      `json:"unknownType,omitempty" yaml:"unknownType,omitempty"`
	UnknownLevel   bool      `json:"unknownLevel,omitempty" yaml:"unknownLevel,omitempty"`
	Multiplier     float64   `json:"multiplier" yaml:"multiplier"`
	Incorrect      bool      `json:"incorrect,omitempty" yaml:"incorrect,omitempty"`
	PerfectFactor  float64   `json:"perfectFactor,omitempty" yaml:"perfectFactor,omitempty"`
	Threshold      Threshold `json:"threshold" yaml:"threshold"`
	TimeRule       TimeRule  `json:"timeRule,omitempty" yaml:"timeRule,omitempty"`
	TimeAdjustment int       `json:"timeAdjustment,omitempty" yaml:"timeAdjustment,omitempty"`
	Capped         bool      `json:"capped,omitempty" yaml:"capped,omitempty"`
	Points         int       `json:"points" yaml:"points"`
}

// Engine scores answers against one point table. It is read-only after
// construction and safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine builds an engine over a private copy of cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.Clone()}
}

// Config returns a copy of the table the engine scores with.
func (e *Engine) Config() Config {
	return e.cfg.Clone()
}

// CalculateQuizPoints returns the points for one answer. It never fails:
// unknown quiz types and levels fall back to fixed defaults.
func (e *Engine) CalculateQuizPoints(req Request) int {
	return e.Explain(req).Points
}

// Explain scores req and returns the intermediate values.
func (e *Engine) Explain(req Request) Breakdown {
	b := Breakdown{QuizType: req.QuizType, Level: req.Level}

	base, ok := e.cfg.BasePoints[req.QuizType]
	if !ok {
		base = DefaultBasePoints
		b.UnknownType = true
	}
	b.BasePoints = base

	levelCfg, ok := e.cfg.Levels[req.Level]
	if !ok {
		levelCfg = e.levelFallback()
		b.UnknownLevel = true
	}
	b.Multiplier = levelCfg.Multiplier

	points := float64(base) * levelCfg.Multiplier

	if !req.Correct {
		// Wrong answers forfeit everything, including the multiplied base.
		b.Incorrect = true
		b.Points = e.incorrectPenalty(req.Level)
		return b
	}

	if req.Perfect && levelCfg.PerfectBonus != 0 {
		b.PerfectFactor = levelCfg.PerfectBonus
		points = math.Floor(points * levelCfg.PerfectBonus)
	}

	if levelCfg.TimeBonus && req.TimeTaken > 0 {
		t := e.cfg.ThresholdFor(req.QuizType)
		b.Threshold = t
		switch {
		case req.TimeTaken >= float64(t.Min) && req.TimeTaken < float64(t.Ideal):
			b.TimeRule = TimeRuleSpeed
			b.TimeAdjustment = e.cfg.Bonuses[BonusSpeed]
		case req.TimeTaken < float64(t.Min):
			b.TimeRule = TimeRuleTooFast
			b.TimeAdjustment = e.cfg.Penalties.Flat[PenaltyTooFast]
		}
		points += float64(b.TimeAdjustment)
	}

	if req.PersonalVerse && points > PersonalVerseCap {
		points = PersonalVerseCap
		b.Capped = true
	}

	b.Points = int(math.Floor(points))
	return b
}

// BonusPoints returns floor(bonus * multiplier), or 0 for an unknown bonus.
func (e *Engine) BonusPoints(bonusType string, multiplier float64) int {
	return int(math.Floor(float64(e.cfg.Bonuses[bonusType]) * multiplier))
}

// PenaltyPoints returns the penalty for penaltyType. incorrectAnswer is
// resolved per level; unknown penalties are 0.
func (e *Engine) PenaltyPoints(penaltyType string, level Level) int {
	if penaltyType == PenaltyIncorrect {
		return e.incorrectPenalty(level)
	}
	return e.cfg.Penalties.Flat[penaltyType]
}

func (e *Engine) incorrectPenalty(level Level) int {
	if p, ok := e.cfg.Penalties.IncorrectAnswer[level]; ok {
		return p
	}
	return DefaultIncorrectAnswer
}

func (e *Engine) levelFallback() LevelConfig {
	if lc, ok := e.cfg.Levels[DefaultLevel]; ok {
		return lc
	}
	return LevelConfig{Multiplier: 1}
}

var defaultEngine = NewEngine(builtin)

// Default returns the engine backed by the built-in table.
func Default() *Engine {
	return defaultEngine
}

// CalculateQuizPoints scores req with the built-in table.
func CalculateQuizPoints(req Request) int {
	return defaultEngine.CalculateQuizPoints(req)
}

// BonusPoints looks up a bonus in the built-in table at multiplier 1.
func BonusPoints(bonusType string) int {
	return defaultEngine.BonusPoints(bonusType, 1)
}

// ScaledBonusPoints looks up a bonus in the built-in table and scales it.
func ScaledBonusPoints(bonusType string, multiplier float64) int {
	return defaultEngine.BonusPoints(bonusType, multiplier)
}

// PenaltyPoints looks up a penalty in the built-in table for a Beginner.
func PenaltyPoints(penaltyType string) int {
	return defaultEngine.PenaltyPoints(penaltyType, DefaultLevel)
}

// LevelPenaltyPoints looks up a penalty in the built-in table for level.
func LevelPenaltyPoints(penaltyType string, level Level) int {
	return defaultEngine.PenaltyPoints(penaltyType, level)
}
