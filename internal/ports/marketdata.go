package ports

import (
	"context"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
)

// PostSource provides the sentiment-scored post dataset.
type PostSource interface {
	ScoredPosts(ctx context.Context) ([]domain.ScoredPost, error)
}

// PriceSource provides one price series per tracked security.
type PriceSource interface {
	PriceSeries(ctx context.Context) (map[string]*domain.PriceSeries, error)
}
