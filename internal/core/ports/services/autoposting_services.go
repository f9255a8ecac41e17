package services

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/events"
)

// AutoPostingSvc turns business events into posted journals.
type AutoPostingSvc interface {
	// HandleBusinessEvent posts the journal for env. A journal already present for the
	// same source makes it a no-op.
	HandleBusinessEvent(ctx context.Context, env events.Envelope) error

	// Replay rebuilds the event for a stored business record and posts it if missing.
	// The bool reports whether a new journal was created.
	Replay(ctx context.Context, req dto.ReplayAutoPostingRequest, actorID string) (*domain.Journal, bool, error)
}
