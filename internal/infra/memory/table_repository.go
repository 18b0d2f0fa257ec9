package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

// BuiltinTable names the compiled-in point table.
const BuiltinTable = "default"

// TableLoader fetches a point table from a backing store (file, database).
type TableLoader interface {
	LoadTable(ctx context.Context, name string) (domain.PointTable, error)
}

// TableRepository caches point tables with TTL to avoid repeated loader hits.
type TableRepository struct {
	loader TableLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedTable
}

type cachedTable struct {
	table     domain.PointTable
	expiresAt time.Time
}

func NewTableRepository(loader TableLoader, ttl time.Duration) *TableRepository {
	return &TableRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedTable),
	}
}

func (r *TableRepository) GetTable(ctx context.Context, name string) (domain.PointTable, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[name]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.table, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(name, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[name]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.table, nil
		}
		r.mu.RUnlock()

		table, err := r.loader.LoadTable(ctx, name)
		if err != nil {
			return domain.PointTable{}, err
		}

		r.mu.Lock()
		r.cache[name] = cachedTable{
			table:     table,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return domain.PointTable{}, err
	}
	return result.(domain.PointTable), nil
}

// StaticTableLoader serves the built-in table plus any extra in-memory tables.
type StaticTableLoader struct {
	tables map[string]points.Config
}

func NewStaticTableLoader(tables map[string]points.Config) *StaticTableLoader {
	return &StaticTableLoader{tables: tables}
}

func (l *StaticTableLoader) LoadTable(_ context.Context, name string) (domain.PointTable, error) {
	if cfg, ok := l.tables[name]; ok {
		return domain.PointTable{Name: name, Config: cfg.Clone()}, nil
	}
	if name == BuiltinTable {
		return domain.PointTable{Name: name, Config: points.DefaultConfig()}, nil
	}
	return domain.PointTable{}, domain.ErrTableNotFound
}

func (r *TableRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
