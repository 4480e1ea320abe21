package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jask/studybunny/internal/testdata"
)

// MaintenanceService houses destructive actions surfaced through the settings screen.
type MaintenanceService struct {
	Tracker *Tracker
}

// Reset wipes every collection. The stores stay usable afterwards.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.Tracker == nil {
		return fmt.Errorf("maintenance: tracker not configured")
	}
	if err := s.Tracker.Marks.Clear(ctx); err != nil {
		return fmt.Errorf("reset marks: %w", err)
	}
	if err := s.Tracker.Homework.Clear(ctx); err != nil {
		return fmt.Errorf("reset homework: %w", err)
	}
	if err := s.Tracker.Teachers.Clear(ctx); err != nil {
		return fmt.Errorf("reset teachers: %w", err)
	}
	return nil
}

// Sample fills empty collections with sample records dated around today and
// reloads the views.
func (s *MaintenanceService) Sample(ctx context.Context, today string, rng *rand.Rand) error {
	if s.Tracker == nil {
		return fmt.Errorf("maintenance: tracker not configured")
	}
	err := testdata.Seed(ctx, testdata.Collections{
		Marks:    s.Tracker.Marks.Store(),
		Homework: s.Tracker.Homework.Store(),
		Teachers: s.Tracker.Teachers.Store(),
	}, today, rng)
	if err != nil {
		return fmt.Errorf("sample data: %w", err)
	}
	return s.Tracker.Load(ctx)
}
