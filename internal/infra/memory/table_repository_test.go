package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

func TestTableRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		TableLoader: NewStaticTableLoader(nil),
	}
	repo := NewTableRepository(loader, time.Minute)

	table, err := repo.GetTable(context.Background(), BuiltinTable)
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if table.Config.BasePoints[points.FillBlank] != 8 {
		t.Fatalf("expected builtin table, got %+v", table.Config.BasePoints)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetTable(context.Background(), BuiltinTable); err != nil {
		t.Fatalf("get table 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestTableRepositoryExpires(t *testing.T) {
	loader := &countingLoader{TableLoader: NewStaticTableLoader(nil)}
	repo := NewTableRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetTable(context.Background(), BuiltinTable)
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetTable(context.Background(), BuiltinTable)
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestStaticTableLoaderUnknown(t *testing.T) {
	_, err := NewStaticTableLoader(nil).LoadTable(context.Background(), "nope")
	if !errors.Is(err, domain.ErrTableNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	TableLoader
	calls int
}

func (l *countingLoader) LoadTable(ctx context.Context, name string) (domain.PointTable, error) {
	l.calls++
	return l.TableLoader.LoadTable(ctx, name)
}
