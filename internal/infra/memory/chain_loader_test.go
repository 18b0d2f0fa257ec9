package memory

import (
	"context"
	"errors"
	"testing"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

type failingLoader struct{ err error }

func (f failingLoader) LoadTable(context.Context, string) (domain.PointTable, error) {
	return domain.PointTable{}, f.err
}

func TestChainLoaderFallsThrough(t *testing.T) {
	custom := points.DefaultConfig()
	custom.Bonuses[points.BonusSpeed] = 1
	chain := NewChainLoader(
		NewStaticTableLoader(map[string]points.Config{"custom": custom}),
		NewStaticTableLoader(nil),
	)

	table, err := chain.LoadTable(context.Background(), BuiltinTable)
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	if table.Config.Bonuses[points.BonusSpeed] != 13 {
		t.Fatalf("expected builtin speed bonus")
	}
	table, err = chain.LoadTable(context.Background(), "custom")
	if err != nil || table.Config.Bonuses[points.BonusSpeed] != 1 {
		t.Fatalf("expected custom table, got %+v err=%v", table.Config.Bonuses, err)
	}
	if _, err := chain.LoadTable(context.Background(), "none"); !errors.Is(err, domain.ErrTableNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChainLoaderStopsOnHardError(t *testing.T) {
	boom := errors.New("connection refused")
	chain := NewChainLoader(failingLoader{err: boom}, NewStaticTableLoader(nil))
	if _, err := chain.LoadTable(context.Background(), BuiltinTable); !errors.Is(err, boom) {
		t.Fatalf("expected hard error, got %v", err)
	}
}
