package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"verse-quiz-points/internal/domain"
)

// TableLoader fetches a point table from a backing store (e.g., Postgres).
type TableLoader interface {
	LoadTable(ctx context.Context, name string) (domain.PointTable, error)
}

// TableRepository caches point tables in Redis and falls back to a loader on cache miss.
// Tables are stored as JSON: SET points:table:{name} {json} EX ttl
type TableRepository struct {
	client *redis.Client
	loader TableLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewTableRepository(client *redis.Client, loader TableLoader, ttl time.Duration) *TableRepository {
	return &TableRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *TableRepository) GetTable(ctx context.Context, name string) (domain.PointTable, error) {
	key := r.key(name)
	if table, ok := r.cached(ctx, key); ok {
		return table, nil
	}

	result, err, _ := r.sf.Do(name, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if table, ok := r.cached(ctx, key); ok {
			return table, nil
		}

		table, err := r.loader.LoadTable(ctx, name)
		if err != nil {
			return domain.PointTable{}, err
		}

		raw, err := json.Marshal(table)
		if err != nil {
			return domain.PointTable{}, err
		}
		if err := r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache point table %q: %v", name, err)
		}
		return table, nil
	})
	if err != nil {
		return domain.PointTable{}, err
	}
	return result.(domain.PointTable), nil
}

// Invalidate drops a cached table so the next read goes to the loader.
func (r *TableRepository) Invalidate(ctx context.Context, name string) error {
	return r.client.Del(ctx, r.key(name)).Err()
}

func (r *TableRepository) cached(ctx context.Context, key string) (domain.PointTable, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("read cached point table %s: %v", key, err)
		}
		return domain.PointTable{}, false
	}
	var table domain.PointTable
	if err := json.Unmarshal(raw, &table); err != nil {
		log.Printf("decode cached point table %s: %v", key, err)
		return domain.PointTable{}, false
	}
	return table, true
}

func (r *TableRepository) key(name string) string {
	return "points:table:" + name
}

func (r *TableRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
