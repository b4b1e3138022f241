package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/veridex/carbon-ledger/pkg/events"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// maxConflictRetries bounds re-reads after a lost transition race. Advancing
// is deliberately not idempotent, so a lost race is re-validated against the
// fresh status rather than blindly replayed.
const maxConflictRetries = 3

// Workflow drives certification transitions against the project store. It is
// the server side of the admin back-office: every call validates the current
// status through the state machine, then commits the transition with a
// conditional write.
type Workflow struct {
	Store  storage.ProjectStore
	Events events.Publisher
}

// NewWorkflow creates a Workflow. The event publisher may be nil.
func NewWorkflow(store storage.ProjectStore, publisher events.Publisher) *Workflow {
	return &Workflow{Store: store, Events: publisher}
}

// Advance moves a project to the next pipeline stage. Repeated calls keep
// advancing; gating repeated advances behind explicit human action is the
// admin UI's job, not this engine's.
func (w *Workflow) Advance(ctx context.Context, projectID string) (*models.Project, error) {
	return w.transition(ctx, projectID, "", func(current models.ProjectStatus) (models.ProjectStatus, error) {
		return Next(current)
	})
}

// Reject transitions a project to the rejected terminal state. The reason is
// mandatory and persisted; there is no transition out of rejected.
func (w *Workflow) Reject(ctx context.Context, projectID, reason string) (*models.Project, error) {
	return w.transition(ctx, projectID, reason, func(current models.ProjectStatus) (models.ProjectStatus, error) {
		if err := ValidateReject(current, reason); err != nil {
			return "", err
		}
		return models.StatusRejected, nil
	})
}

// Retire transitions an active project to the retired terminal state.
func (w *Workflow) Retire(ctx context.Context, projectID string) (*models.Project, error) {
	return w.transition(ctx, projectID, "", func(current models.ProjectStatus) (models.ProjectStatus, error) {
		if err := ValidateRetire(current); err != nil {
			return "", err
		}
		return models.StatusRetired, nil
	})
}

// UpdateVerification applies admin verification metadata to a project.
func (w *Workflow) UpdateVerification(ctx context.Context, projectID string, update storage.VerificationUpdate) (*models.Project, error) {
	return w.Store.UpdateVerification(ctx, projectID, update, time.Now().UTC())
}

// transition reads the project, asks decide for the target status, and
// commits with a status+version condition. A lost race re-reads and
// re-decides from the fresh status, so an invalid transition is reported from
// the state that actually holds, never silently clamped.
func (w *Workflow) transition(ctx context.Context, projectID, reason string, decide func(models.ProjectStatus) (models.ProjectStatus, error)) (*models.Project, error) {
	var lastErr error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		project, err := w.Store.GetProject(ctx, projectID)
		if err != nil {
			return nil, err
		}

		to, err := decide(project.Status)
		if err != nil {
			return nil, err
		}

		updated, err := w.Store.TransitionProject(ctx, project, to, reason, time.Now().UTC())
		if err == nil {
			w.publish(ctx, events.Event{
				Type: events.EventProjectStatusChanged,
				Payload: events.StatusPayload{
					ProjectID: projectID,
					From:      project.Status,
					To:        to,
					Reason:    reason,
				},
			})
			return updated, nil
		}
		if errors.Is(err, storage.ErrVersionConflict) {
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("transition did not commit after %d attempts: %w", maxConflictRetries+1, lastErr)
}

func (w *Workflow) publish(ctx context.Context, event events.Event) {
	if w.Events == nil {
		return
	}
	if err := w.Events.Publish(ctx, event); err != nil {
		slog.Error("failed to publish status event", "type", event.Type, "error", err)
	}
}
