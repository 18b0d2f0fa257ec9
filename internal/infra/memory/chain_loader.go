package memory

import (
	"context"
	"errors"

	"verse-quiz-points/internal/domain"
)

// ChainLoader asks each loader in turn and returns the first table found.
type ChainLoader struct {
	loaders []TableLoader
}

func NewChainLoader(loaders ...TableLoader) *ChainLoader {
	return &ChainLoader{loaders: loaders}
}

func (c *ChainLoader) LoadTable(ctx context.Context, name string) (domain.PointTable, error) {
	for _, l := range c.loaders {
		table, err := l.LoadTable(ctx, name)
		if err == nil {
			return table, nil
		}
		if !errors.Is(err, domain.ErrTableNotFound) {
			return domain.PointTable{}, err
		}
	}
	return domain.PointTable{}, domain.ErrTableNotFound
}
