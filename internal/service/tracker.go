package service

import (
	"context"
	"fmt"

	"github.com/jask/studybunny/internal/composer"
	"github.com/jask/studybunny/internal/delivery"
	"github.com/jask/studybunny/internal/listview"
	"github.com/jask/studybunny/internal/record"
)

// Tracker owns the three list views and opens wizards that deliver into
// their mailboxes.
type Tracker struct {
	Marks    *listview.View[record.Mark]
	Homework *listview.View[record.Homework]
	Teachers *listview.View[record.Teacher]
}

func NewTracker(marks *listview.View[record.Mark], homework *listview.View[record.Homework], teachers *listview.View[record.Teacher]) *Tracker {
	return &Tracker{Marks: marks, Homework: homework, Teachers: teachers}
}

// ComposeMark opens a mark wizard; existing is nil for a new mark.
func (t *Tracker) ComposeMark(existing *record.Mark) (*composer.Machine[record.Mark], *composer.MarkForm) {
	return composer.NewMark(existing, t.Marks.Inbox())
}

func (t *Tracker) ComposeHomework(existing *record.Homework) (*composer.Machine[record.Homework], *composer.HomeworkForm) {
	return composer.NewHomework(existing, t.Homework.Inbox())
}

func (t *Tracker) ComposeTeacher(existing *record.Teacher) (*composer.Machine[record.Teacher], *composer.TeacherForm) {
	return composer.NewTeacher(existing, t.Teachers.Inbox())
}

// Deliver focuses the view owning kind so it merges its pending record, and
// returns the screen to navigate to.
func (t *Tracker) Deliver(ctx context.Context, kind record.Kind) (string, error) {
	var err error
	switch kind {
	case record.KindMark:
		_, err = t.Marks.Focus(ctx)
	case record.KindHomework:
		_, err = t.Homework.Focus(ctx)
	case record.KindTeacher:
		_, err = t.Teachers.Focus(ctx)
	default:
		return "", fmt.Errorf("deliver: unknown record kind %q", kind)
	}
	return delivery.OwningScreen(kind), err
}

// Load focuses every view.
func (t *Tracker) Load(ctx context.Context) error {
	for _, kind := range record.Kinds {
		if _, err := t.Deliver(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}
