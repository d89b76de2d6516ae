package ports

import (
	"context"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
)

// Notifier presents a finished run to the user.
type Notifier interface {
	// Notify reports each trader's final portfolio. The console
	// implementation prints a formatted table.
	Notify(ctx context.Context, run domain.RunResult) error
}
