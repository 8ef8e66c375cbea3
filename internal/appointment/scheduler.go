package appointment

import (
	"context"
	"time"
)

// Scheduler is the external scheduling boundary. The calendar engine emits
// move/resize requests here and does not await, retry, or serialize them;
// a rejection leaves the previously persisted times in place and the caller
// re-reads state on the next render.
type Scheduler interface {
	// Create adds a new appointment.
	Create(ctx context.Context, a *Appointment) error

	// Get retrieves an appointment by ID.
	Get(ctx context.Context, id string) (*Appointment, error)

	// Move reschedules an appointment to a new interval of equal duration.
	// Returns ErrOverlap if the target interval collides with another
	// appointment, ErrNotFound if the ID is unknown.
	Move(ctx context.Context, id string, newStart, newEnd time.Time) error

	// Resize changes an appointment's end time, keeping its start.
	// Same error contract as Move.
	Resize(ctx context.Context, id string, newEnd time.Time) error

	// SetStatus updates the lifecycle status.
	SetStatus(ctx context.Context, id string, status Status) error

	// ListRange returns appointments starting within [from, to), sorted by
	// start time.
	ListRange(ctx context.Context, from, to time.Time) ([]*Appointment, error)
}
