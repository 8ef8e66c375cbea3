package appointment

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryScheduler_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	sched := NewMemoryScheduler()

	a := mustNew(t, "Ana Suarez", TypeConsultation, at(day, "09:00"), at(day, "09:30"))
	if err := sched.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := sched.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.PatientName != "Ana Suarez" {
		t.Errorf("got patient %q", got.PatientName)
	}

	// Returned value is a copy, mutating it must not touch stored state.
	got.PatientName = "changed"
	again, _ := sched.Get(ctx, a.ID)
	if again.PatientName != "Ana Suarez" {
		t.Error("Get should return a copy")
	}

	if _, err := sched.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryScheduler_MoveRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	sched := NewMemoryScheduler()

	a := mustNew(t, "Ana Suarez", TypeConsultation, at(day, "09:00"), at(day, "09:30"))
	b := mustNew(t, "Luis Perez", TypeFollowUp, at(day, "10:00"), at(day, "10:30"))
	if err := sched.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := sched.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	// Moving a onto b must be rejected and leave a untouched.
	err := sched.Move(ctx, a.ID, at(day, "10:15"), at(day, "10:45"))
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
	got, _ := sched.Get(ctx, a.ID)
	if !got.Start.Equal(at(day, "09:00")) {
		t.Errorf("rejected move mutated start: %v", got.Start)
	}

	// A legal move succeeds.
	if err := sched.Move(ctx, a.ID, at(day, "11:00"), at(day, "11:30")); err != nil {
		t.Fatalf("legal move failed: %v", err)
	}
	got, _ = sched.Get(ctx, a.ID)
	if !got.Start.Equal(at(day, "11:00")) || !got.End.Equal(at(day, "11:30")) {
		t.Errorf("move not applied: %v-%v", got.Start, got.End)
	}
}

func TestMemoryScheduler_MoveOntoCancelledSlot(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	sched := NewMemoryScheduler()

	a := mustNew(t, "Ana Suarez", TypeConsultation, at(day, "09:00"), at(day, "09:30"))
	b := mustNew(t, "Luis Perez", TypeFollowUp, at(day, "10:00"), at(day, "10:30"))
	if err := sched.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := sched.Create(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := sched.SetStatus(ctx, b.ID, StatusCancelled); err != nil {
		t.Fatal(err)
	}

	// Cancelled appointments do not block their slot.
	if err := sched.Move(ctx, a.ID, at(day, "10:00"), at(day, "10:30")); err != nil {
		t.Errorf("move onto cancelled slot failed: %v", err)
	}
}

func TestMemoryScheduler_Resize(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	sched := NewMemoryScheduler()

	a := mustNew(t, "Ana Suarez", TypeConsultation, at(day, "09:00"), at(day, "09:30"))
	if err := sched.Create(ctx, a); err != nil {
		t.Fatal(err)
	}

	if err := sched.Resize(ctx, a.ID, at(day, "10:00")); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	got, _ := sched.Get(ctx, a.ID)
	if !got.End.Equal(at(day, "10:00")) {
		t.Errorf("end = %v, want 10:00", got.End)
	}

	// Resizing to or before start is rejected.
	if err := sched.Resize(ctx, a.ID, at(day, "09:00")); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestMemoryScheduler_ListRange(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	sched := NewMemoryScheduler()

	// Created out of order; listing must sort by start.
	b := mustNew(t, "Luis Perez", TypeFollowUp, at(day, "10:00"), at(day, "10:30"))
	a := mustNew(t, "Ana Suarez", TypeConsultation, at(day, "09:00"), at(day, "09:30"))
	next := mustNew(t, "Eva Gomez", TypeStudy, at(day.AddDate(0, 0, 10), "09:00"), at(day.AddDate(0, 0, 10), "09:30"))
	for _, appt := range []*Appointment{b, a, next} {
		if err := sched.Create(ctx, appt); err != nil {
			t.Fatal(err)
		}
	}

	got, err := sched.ListRange(ctx, day, day.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d appointments, want 2", len(got))
	}
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("appointments not sorted by start time")
	}
}
