package appointment

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryScheduler is an in-memory Scheduler implementation. It backs the TUI
// and tests; durable storage lives behind the same interface elsewhere.
type MemoryScheduler struct {
	mu    sync.Mutex
	byID  map[string]*Appointment
	order []string // insertion order, keeps listing stable for equal starts
}

// NewMemoryScheduler creates an empty in-memory scheduler.
func NewMemoryScheduler() *MemoryScheduler {
	return &MemoryScheduler{byID: make(map[string]*Appointment)}
}

// Create adds a new appointment. Overlaps with cancelled appointments are
// allowed; their slot is considered free.
func (m *MemoryScheduler) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOverlap(a.ID, a.Start, a.End); err != nil {
		return err
	}

	cp := *a
	m.byID[a.ID] = &cp
	m.order = append(m.order, a.ID)
	return nil
}

// Get retrieves a copy of an appointment by ID.
func (m *MemoryScheduler) Get(_ context.Context, id string) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// Move reschedules an appointment. The stored record is only mutated when the
// target interval is free, so a rejected move leaves prior state intact.
func (m *MemoryScheduler) Move(_ context.Context, id string, newStart, newEnd time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !newEnd.After(newStart) {
		return ErrEndBeforeStart
	}
	if err := m.checkOverlap(id, newStart, newEnd); err != nil {
		return err
	}

	a.Start = newStart
	a.End = newEnd
	return nil
}

// Resize changes an appointment's end time.
func (m *MemoryScheduler) Resize(_ context.Context, id string, newEnd time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !newEnd.After(a.Start) {
		return ErrEndBeforeStart
	}
	if err := m.checkOverlap(id, a.Start, newEnd); err != nil {
		return err
	}

	a.End = newEnd
	return nil
}

// SetStatus updates the lifecycle status.
func (m *MemoryScheduler) SetStatus(_ context.Context, id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !status.Valid() {
		return ErrInvalidStatus
	}
	a, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

// ListRange returns copies of appointments starting within [from, to),
// sorted by start time.
func (m *MemoryScheduler) ListRange(_ context.Context, from, to time.Time) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*Appointment
	for _, id := range m.order {
		a := m.byID[id]
		if a.Start.Before(from) || !a.Start.Before(to) {
			continue
		}
		cp := *a
		result = append(result, &cp)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})
	return result, nil
}

// checkOverlap returns ErrOverlap if [start, end) collides with any active
// appointment other than excludeID. Cancelled and no-show appointments do not
// block a slot.
func (m *MemoryScheduler) checkOverlap(excludeID string, start, end time.Time) error {
	for _, other := range m.byID {
		if other.ID == excludeID {
			continue
		}
		if other.Status == StatusCancelled || other.Status == StatusNoShow {
			continue
		}
		if start.Before(other.End) && other.Start.Before(end) {
			return ErrOverlap
		}
	}
	return nil
}
