package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

// Querier is the part of *pgxpool.Pool the loader needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TableLoader loads point table JSONB from Postgres.
type TableLoader struct {
	db Querier
}

func NewTableLoader(db Querier) *TableLoader {
	return &TableLoader{db: db}
}

func (l *TableLoader) LoadTable(ctx context.Context, name string) (domain.PointTable, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := l.db.QueryRow(ctx, `SELECT data, updated_at FROM point_tables WHERE name=$1`, name).Scan(&raw, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PointTable{}, fmt.Errorf("%w: %s", domain.ErrTableNotFound, name)
	}
	if err != nil {
		return domain.PointTable{}, fmt.Errorf("load point table: %w", err)
	}
	cfg, err := points.OverlayJSON(points.DefaultConfig(), raw)
	if err != nil {
		return domain.PointTable{}, fmt.Errorf("unmarshal point table: %w", err)
	}
	return domain.PointTable{Name: name, Config: cfg, UpdatedAt: updatedAt.UTC()}, nil
}
