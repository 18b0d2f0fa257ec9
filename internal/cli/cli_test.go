package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score", "--type", "verse-scramble", "--level", "Intermediate", "--time", "10")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if strings.TrimSpace(out) != "28" {
		t.Fatalf("expected 28, got %q", out)
	}

	out, err = run(t, "score", "--type", "sword-drill-ultimate", "--level", "Elite", "--time", "1", "--perfect", "--explain", "--format", "json")
	if err != nil {
		t.Fatalf("score explain: %v", err)
	}
	var result domain.ScoreResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if result.Points != 182 || result.Breakdown == nil || result.Breakdown.TimeRule != points.TimeRuleTooFast {
		t.Fatalf("unexpected result %+v", result)
	}

	out, err = run(t, "score", "--type", "fill-blank", "--level", "Elite", "--correct=false")
	if err != nil {
		t.Fatalf("score incorrect: %v", err)
	}
	if strings.TrimSpace(out) != "-25" {
		t.Fatalf("expected -25, got %q", out)
	}
}

func TestBonusAndPenaltyCommands(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"bonus", "perfectQuiz"}, "25"},
		{[]string{"bonus", "perfectQuiz", "--multiplier", "2"}, "50"},
		{[]string{"bonus", "unknownKey"}, "0"},
		{[]string{"penalty", "incorrectAnswer", "--level", "Elite"}, "-25"},
		{[]string{"penalty", "streakBroken"}, "-25"},
		{[]string{"penalty", "unknownKey"}, "0"},
	}
	for _, tc := range cases {
		out, err := run(t, tc.args...)
		if err != nil {
			t.Fatalf("%v: %v", tc.args, err)
		}
		if strings.TrimSpace(out) != tc.want {
			t.Fatalf("%v: expected %s, got %q", tc.args, tc.want, out)
		}
	}
}

func TestScoreFileCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	events := `[
  {"quizType": "verse-scramble", "correct": true, "level": "Intermediate", "timeTaken": 10},
  {"quizType": "fill-blank", "correct": true, "level": "Beginner", "timeTaken": 1, "progress": {"streak": 3}},
  {"quizType": "type-verse", "correct": true, "level": "Elite", "personalVerse": true}
]`
	if err := os.WriteFile(path, []byte(events), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "score-file", path, "--format", "json")
	if err != nil {
		t.Fatalf("score-file: %v", err)
	}
	var decoded batchOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(decoded.Results) != 3 || decoded.Summary.Total != 41 || decoded.Summary.Correct != 3 {
		t.Fatalf("unexpected output %+v", decoded)
	}
}

func TestTableCommandUsesYAMLDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "harvest.yaml"), []byte("shopItems:\n  streakFreeze: 70\n"), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("points:\n  dir: "+dir+"\n  table: harvest\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", configPath, "table", "--format", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("table: %v", err)
	}
	var cfg points.Config
	if err := json.Unmarshal(out.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.ShopItems["streakFreeze"] != 70 || cfg.ShopItems["hintToken"] != 20 {
		t.Fatalf("unexpected shop items %+v", cfg.ShopItems)
	}
}

func TestScoreUsesRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("redis:\n  addr: "+mr.Addr()+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", configPath, "score", "--type", "fill-blank"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("score: %v", err)
	}
	if strings.TrimSpace(out.String()) != "8" {
		t.Fatalf("expected 8, got %q", out.String())
	}
	if !mr.Exists("points:table:default") {
		t.Fatalf("expected builtin table cached in redis")
	}
}

func TestUnknownTableFails(t *testing.T) {
	if _, err := run(t, "--table", "nope", "score"); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

func TestPublishRequiresPostgres(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("points:\n  table: default\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "publish", "spring", "spring.yaml"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "postgres url not configured") {
		t.Fatalf("expected postgres error, got %v", err)
	}
}
