package ports

import (
	"context"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
)

// ResultStore persists finished simulation runs.
type ResultStore interface {
	// SaveRun persists a run: its metadata, every trader's holdings
	// snapshot, cost basis and full value history.
	SaveRun(ctx context.Context, run domain.RunResult) error

	// ValueHistory returns one trader's persisted value history for a run,
	// ordered by date ascending.
	ValueHistory(ctx context.Context, runID, community string) ([]domain.ValuePoint, error)

	// Holdings returns one trader's persisted holdings snapshot for a run.
	Holdings(ctx context.Context, runID, community string) (map[string]int, error)

	// Close releases the underlying database.
	Close() error
}
