package points

import (
	"errors"
	"fmt"
	"math"
)

// QuizType identifies a category of quiz question.
type QuizType string

const (
	FillBlank          QuizType = "fill-blank"
	MultipleChoice     QuizType = "multiple-choice"
	VerseScramble      QuizType = "verse-scramble"
	ReferenceMatch     QuizType = "reference-match"
	FirstLetter        QuizType = "first-letter"
	TypeVerse          QuizType = "type-verse"
	SwordDrill         QuizType = "sword-drill"
	SwordDrillUltimate QuizType = "sword-drill-ultimate"
)

// Level is a user difficulty tier.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
	Elite        Level = "Elite"
)

// Fallbacks used when a lookup key is not present in the table.
const (
	DefaultBasePoints      = 10
	DefaultIncorrectAnswer = -10
	DefaultLevel           = Beginner
	PersonalVerseCap       = 5
)

// Well-known bonus and penalty names.
const (
	BonusPerfectQuiz      = "perfectQuiz"
	BonusSpeed            = "speedBonus"
	PenaltyIncorrect      = "incorrectAnswer"
	PenaltyTooFast        = "tooFastAnswer"
	PenaltyStreakBroken   = "streakBroken"
	defaultThresholdLabel = "default"
)

// LevelConfig holds the multipliers applied for a user level.
type LevelConfig struct {
	Multiplier   float64 `yaml:"multiplier" json:"multiplier"`
	TimeBonus    bool    `yaml:"timeBonus" json:"timeBonus"`
	PerfectBonus float64 `yaml:"perfectBonus" json:"perfectBonus"`
}

// Threshold is a timing window in seconds. Max is informational.
type Threshold struct {
	Min   int `yaml:"min" json:"min"`
	Ideal int `yaml:"ideal" json:"ideal"`
	Max   int `yaml:"max" json:"max"`
}

// Penalties splits the per-level incorrect-answer penalty from the flat ones.
type Penalties struct {
	IncorrectAnswer map[Level]int  `yaml:"incorrectAnswer" json:"incorrectAnswer"`
	Flat            map[string]int `yaml:"flat" json:"flat"`
}

// DifficultyTweak shapes quiz generation for a level. Scoring ignores it.
type DifficultyTweak struct {
	OptionCount    int     `yaml:"optionCount" json:"optionCount"`
	BlankRatio     float64 `yaml:"blankRatio" json:"blankRatio"`
	HintsAllowed   int     `yaml:"hintsAllowed" json:"hintsAllowed"`
	ShowReference  bool    `yaml:"showReference" json:"showReference"`
	ScrambleChunks int     `yaml:"scrambleChunks" json:"scrambleChunks"`
}

// Config is the full point system table.
type Config struct {
	BasePoints       map[QuizType]int          `yaml:"basePoints" json:"basePoints"`
	Levels           map[Level]LevelConfig     `yaml:"levels" json:"levels"`
	Bonuses          map[string]int            `yaml:"bonuses" json:"bonuses"`
	Penalties        Penalties                 `yaml:"penalties" json:"penalties"`
	TimeThresholds   map[QuizType]Threshold    `yaml:"timeThresholds" json:"timeThresholds"`
	DefaultThreshold Threshold                 `yaml:"defaultThreshold" json:"defaultThreshold"`
	ShopItems        map[string]int            `yaml:"shopItems" json:"shopItems"`
	DifficultyTweaks map[Level]DifficultyTweak `yaml:"difficultyTweaks" json:"difficultyTweaks"`
}

// builtin is never handed out directly; DefaultConfig returns copies.
var builtin = Config{
	BasePoints: map[QuizType]int{
		MultipleChoice:     5,
		FillBlank:          8,
		VerseScramble:      10,
		ReferenceMatch:     12,
		FirstLetter:        15,
		SwordDrill:         18,
		TypeVerse:          20,
		SwordDrillUltimate: 25,
	},
	Levels: map[Level]LevelConfig{
		Beginner:     {Multiplier: 1.0, TimeBonus: false, PerfectBonus: 1.5},
		Intermediate: {Multiplier: 1.5, TimeBonus: true, PerfectBonus: 1.75},
		Advanced:     {Multiplier: 2.0, TimeBonus: true, PerfectBonus: 2.0},
		Elite:        {Multiplier: 3.0, TimeBonus: true, PerfectBonus: 2.5},
	},
	Bonuses: map[string]int{
		BonusPerfectQuiz:   25,
		BonusSpeed:         13,
		"firstTry":         5,
		"dailyStreak":      10,
		"weeklyStreak":     50,
		"verseMastered":    20,
		"chapterCompleted": 100,
	},
	Penalties: Penalties{
		IncorrectAnswer: map[Level]int{
			Beginner:     -5,
			Intermediate: -10,
			Advanced:     -15,
			Elite:        -25,
		},
		Flat: map[string]int{
			PenaltyTooFast:      -5,
			PenaltyStreakBroken: -25,
			"hintUsed":          -3,
			"skippedQuestion":   -2,
		},
	},
	TimeThresholds: map[QuizType]Threshold{
		MultipleChoice:     {Min: 1, Ideal: 5, Max: 30},
		FillBlank:          {Min: 2, Ideal: 10, Max: 60},
		VerseScramble:      {Min: 3, Ideal: 15, Max: 90},
		ReferenceMatch:     {Min: 2, Ideal: 8, Max: 45},
		FirstLetter:        {Min: 5, Ideal: 20, Max: 120},
		SwordDrill:         {Min: 2, Ideal: 6, Max: 30},
		TypeVerse:          {Min: 10, Ideal: 30, Max: 180},
		SwordDrillUltimate: {Min: 2, Ideal: 8, Max: 45},
	},
	DefaultThreshold: Threshold{Min: 2, Ideal: 10, Max: 60},
	ShopItems: map[string]int{
		"hintToken":        20,
		"extraLife":        30,
		"streakFreeze":     50,
		"themeUnlock":      100,
		"doublePointsHour": 150,
	},
	DifficultyTweaks: map[Level]DifficultyTweak{
		Beginner:     {OptionCount: 3, BlankRatio: 0.2, HintsAllowed: 3, ShowReference: true, ScrambleChunks: 4},
		Intermediate: {OptionCount: 4, BlankRatio: 0.35, HintsAllowed: 2, ShowReference: true, ScrambleChunks: 6},
		Advanced:     {OptionCount: 5, BlankRatio: 0.5, HintsAllowed: 1, ShowReference: false, ScrambleChunks: 8},
		Elite:        {OptionCount: 6, BlankRatio: 0.7, HintsAllowed: 0, ShowReference: false, ScrambleChunks: 12},
	},
}

// DefaultConfig returns a copy of the built-in point table.
func DefaultConfig() Config {
	return builtin.Clone()
}

// Clone returns a deep copy so callers cannot mutate shared maps.
func (c Config) Clone() Config {
	out := c
	out.BasePoints = cloneMap(c.BasePoints)
	out.Levels = cloneMap(c.Levels)
	out.Bonuses = cloneMap(c.Bonuses)
	out.Penalties = Penalties{
		IncorrectAnswer: cloneMap(c.Penalties.IncorrectAnswer),
		Flat:            cloneMap(c.Penalties.Flat),
	}
	out.TimeThresholds = cloneMap(c.TimeThresholds)
	out.ShopItems = cloneMap(c.ShopItems)
	out.DifficultyTweaks = cloneMap(c.DifficultyTweaks)
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// ThresholdFor returns the timing window for a quiz type, or the default window.
func (c Config) ThresholdFor(quizType QuizType) Threshold {
	if t, ok := c.TimeThresholds[quizType]; ok {
		return t
	}
	return c.DefaultThreshold
}

// Validate reports structural problems in a loaded table. The scoring path
// never calls it; it guards tables coming from files or databases.
func (c Config) Validate() error {
	var errs []error
	if _, ok := c.Levels[DefaultLevel]; !ok {
		errs = append(errs, fmt.Errorf("levels: missing %s entry", DefaultLevel))
	}
	for level, lc := range c.Levels {
		if !(lc.Multiplier > 0) || math.IsInf(lc.Multiplier, 0) {
			errs = append(errs, fmt.Errorf("levels.%s: multiplier must be positive and finite", level))
		}
		if !(lc.PerfectBonus >= 0) || math.IsInf(lc.PerfectBonus, 0) {
			errs = append(errs, fmt.Errorf("levels.%s: perfectBonus must be non-negative and finite", level))
		}
	}
	for quizType, pts := range c.BasePoints {
		if pts < 0 {
			errs = append(errs, fmt.Errorf("basePoints.%s: must not be negative", quizType))
		}
	}
	if err := c.DefaultThreshold.validate(defaultThresholdLabel); err != nil {
		errs = append(errs, err)
	}
	for quizType, t := range c.TimeThresholds {
		if err := t.validate(string(quizType)); err != nil {
			errs = append(errs, err)
		}
	}
	for level, p := range c.Penalties.IncorrectAnswer {
		if p > 0 {
			errs = append(errs, fmt.Errorf("penalties.incorrectAnswer.%s: must not be positive", level))
		}
	}
	return errors.Join(errs...)
}

func (t Threshold) validate(label string) error {
	if t.Min < 0 || t.Ideal < t.Min || (t.Max != 0 && t.Max < t.Ideal) {
		return fmt.Errorf("timeThresholds.%s: want 0 <= min <= ideal <= max, got %d/%d/%d", label, t.Min, t.Ideal, t.Max)
	}
	return nil
}
