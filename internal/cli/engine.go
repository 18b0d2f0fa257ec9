package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"verse-quiz-points/internal/app"
	"verse-quiz-points/internal/config"
	"verse-quiz-points/internal/infra/memory"
	pgloader "verse-quiz-points/internal/infra/postgres"
	rediscache "verse-quiz-points/internal/infra/redis"
	"verse-quiz-points/internal/infra/yamlfile"
)

// loadService resolves the point table once and returns a ready scoring service.
func loadService(ctx context.Context, configPath, tableFlag string) (*app.ScoringService, error) {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, err
	}

	table := tableFlag
	if table == "" {
		table = cfg.Points.Table
	}
	if table == "" {
		table = memory.BuiltinTable
	}

	var loader memory.TableLoader = memory.NewStaticTableLoader(nil)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		loader = memory.NewChainLoader(pgloader.NewTableLoader(pool), loader)
	} else if cfg.Points.Dir != "" {
		loader = memory.NewChainLoader(yamlfile.NewTableLoader(cfg.Points.Dir), loader)
	}

	ttl := config.TTLDuration(cfg.Points.TTL, 10*time.Minute)
	var repo app.TableRepository
	if client := newRedisClient(cfg); client != nil {
		defer client.Close()
		repo = rediscache.NewTableRepository(client, loader, ttl)
	} else {
		repo = memory.NewTableRepository(loader, ttl)
	}

	engine, err := app.LoadEngine(ctx, repo, table)
	if err != nil {
		return nil, err
	}
	return app.NewScoringService(engine), nil
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
