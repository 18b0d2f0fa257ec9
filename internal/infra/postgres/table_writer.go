package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

type pointTableRow struct {
	bun.BaseModel `bun:"table:point_tables"`

	Name      string        `bun:"name,pk"`
	Config    points.Config `bun:"data,type:jsonb"`
	UpdatedAt time.Time     `bun:"updated_at,notnull"`
}

// OpenDB opens a bun handle over the pgdriver connector.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// TableWriter publishes point tables so loaders on other hosts can pick them up.
type TableWriter struct {
	db  *bun.DB
	now func() time.Time
}

func NewTableWriter(db *bun.DB) *TableWriter {
	return &TableWriter{db: db, now: time.Now}
}

// SaveTable inserts or replaces a named table.
func (w *TableWriter) SaveTable(ctx context.Context, name string, cfg points.Config) (domain.PointTable, error) {
	if name == "" {
		return domain.PointTable{}, domain.ErrEmptyTableName
	}
	row := &pointTableRow{Name: name, Config: cfg, UpdatedAt: w.now().UTC()}
	if _, err := w.upsert(row).Exec(ctx); err != nil {
		return domain.PointTable{}, fmt.Errorf("save point table %q: %w", name, err)
	}
	return domain.PointTable{Name: row.Name, Config: row.Config, UpdatedAt: row.UpdatedAt}, nil
}

func (w *TableWriter) upsert(row *pointTableRow) *bun.InsertQuery {
	return w.db.NewInsert().
		Model(row).
		On("CONFLICT (name) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at")
}

// ListTables returns the published table names in order.
func (w *TableWriter) ListTables(ctx context.Context) ([]string, error) {
	var names []string
	err := w.db.NewSelect().
		Model((*pointTableRow)(nil)).
		Column("name").
		Order("name ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("list point tables: %w", err)
	}
	return names, nil
}
