package domain

import (
	"time"

	"verse-quiz-points/internal/points"
)

// AnswerEvent is one scored answer as supplied by a client or an event file.
type AnswerEvent struct {
	QuizType      points.QuizType `yaml:"quizType" json:"quizType"`
	Correct       bool            `yaml:"correct" json:"correct"`
	Level         points.Level    `yaml:"level" json:"level"`
	TimeTaken     float64         `yaml:"timeTaken" json:"timeTaken"`
	Perfect       bool            `yaml:"perfect" json:"perfect"`
	PersonalVerse bool            `yaml:"personalVerse" json:"personalVerse"`
	// Progress is carried through to the engine untouched.
	Progress map[string]any `yaml:"progress,omitempty" json:"progress,omitempty"`
}

// Request converts the event into an engine request.
func (e AnswerEvent) Request() points.Request {
	r := points.Request{
		QuizType:      e.QuizType,
		Correct:       e.Correct,
		Level:         e.Level,
		TimeTaken:     e.TimeTaken,
		Perfect:       e.Perfect,
		PersonalVerse: e.PersonalVerse,
	}
	if e.Progress != nil {
		r.Progress = e.Progress
	}
	return r
}

// ScoreResult pairs an event with the points it earned.
type ScoreResult struct {
	Event     AnswerEvent       `yaml:"event" json:"event"`
	Points    int               `yaml:"points" json:"points"`
	Breakdown *points.Breakdown `yaml:"breakdown,omitempty" json:"breakdown,omitempty"`
}

// Summary totals a batch of scored events. It is computed on demand and never stored.
type Summary struct {
	Events     int                     `yaml:"events" json:"events"`
	Correct    int                     `yaml:"correct" json:"correct"`
	Incorrect  int                     `yaml:"incorrect" json:"incorrect"`
	Total      int                     `yaml:"total" json:"total"`
	ByQuizType map[points.QuizType]int `yaml:"byQuizType" json:"byQuizType"`
}

// PointTable is a named point system table as held by a loader.
type PointTable struct {
	Name      string        `json:"name"`
	Config    points.Config `json:"config"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
