// Package listview is the model behind the list screens: the loaded
// collection, the date and color filters, and the merge of records
// delivered by a wizard.
package listview

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jask/studybunny/internal/collection"
	"github.com/jask/studybunny/internal/delivery"
	"github.com/jask/studybunny/internal/record"
)

// View is one list screen's state.
type View[R record.Record] struct {
	store     *collection.Store[R]
	inbox     *delivery.Mailbox[R]
	validator *record.Validator

	records       []R
	dated         bool
	selectedDate  string
	selectedColor record.Color

	loc *time.Location
	now func() time.Time
}

// Options tune the clock a view uses for "today".
type Options struct {
	Location *time.Location
	Now      func() time.Time
}

// New builds a view over store receiving from inbox. Records are not loaded
// until the first Focus.
func New[R record.Record](store *collection.Store[R], inbox *delivery.Mailbox[R], v *record.Validator, opts Options) *View[R] {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	var zero R
	_, dated := any(zero).(record.Dated)
	view := &View[R]{
		store:     store,
		inbox:     inbox,
		validator: v,
		records:   []R{},
		dated:     dated,
		loc:       opts.Location,
		now:       opts.Now,
	}
	if dated {
		view.selectedDate = record.Today(view.now(), view.loc)
	}
	return view
}

func (v *View[R]) Store() *collection.Store[R] { return v.store }
func (v *View[R]) Inbox() *delivery.Mailbox[R] { return v.inbox }
func (v *View[R]) Dated() bool                 { return v.dated }
func (v *View[R]) SelectedDate() string        { return v.selectedDate }
func (v *View[R]) SelectedColor() record.Color { return v.selectedColor }

// Records is the whole collection in stored order.
func (v *View[R]) Records() []R { return append([]R(nil), v.records...) }

// Find returns the record with id from the loaded collection.
func (v *View[R]) Find(id string) (R, bool) {
	if idx := collection.IndexOf(v.records, id); idx >= 0 {
		return v.records[idx], true
	}
	var zero R
	return zero, false
}

// Focus reloads the collection and merges a pending delivery, if any. It
// reports whether a record was merged. The delivery stays in the mailbox
// when the merged collection cannot be saved, so a later Focus retries it.
func (v *View[R]) Focus(ctx context.Context) (bool, error) {
	v.records = v.store.Load(ctx)

	msg, ok := v.inbox.Peek()
	if !ok {
		return false, nil
	}
	if err := v.validator.Check(msg.Payload); err != nil {
		v.inbox.Ack()
		return false, fmt.Errorf("reject %s: %w", msg.Param(), err)
	}

	merged := append([]R(nil), v.records...)
	switch msg.Kind {
	case delivery.New:
		merged = append(merged, asNew(msg.Payload))
	case delivery.Updated:
		idx := collection.IndexOf(merged, msg.Payload.RecordID())
		if idx < 0 {
			v.inbox.Ack()
			log.Printf("warn: %s: no record %s", msg.Param(), msg.Payload.RecordID())
			return false, nil
		}
		merged[idx] = asUpdate(merged[idx], msg.Payload)
	default:
		v.inbox.Ack()
		return false, fmt.Errorf("unknown delivery kind %q", msg.Kind)
	}

	if err := v.store.SaveAll(ctx, merged); err != nil {
		return false, err
	}
	v.inbox.Ack()
	v.records = merged
	if d, ok := any(msg.Payload).(record.Dated); ok {
		v.selectedDate = d.Day()
	}
	return true, nil
}

// asNew prepares a freshly composed record for appending.
func asNew[R record.Record](r R) R {
	switch p := any(r).(type) {
	case record.Homework:
		p.Completed = false
		return any(p).(R)
	case record.Mark, record.Teacher:
		return r
	default:
		panic(fmt.Sprintf("listview: unhandled record type %T", r))
	}
}

// asUpdate merges an edited record over the stored one. Homework keeps the
// stored completion flag.
func asUpdate[R record.Record](stored, payload R) R {
	switch p := any(payload).(type) {
	case record.Homework:
		p.Completed = any(stored).(record.Homework).Completed
		return any(p).(R)
	case record.Mark, record.Teacher:
		return payload
	default:
		panic(fmt.Sprintf("listview: unhandled record type %T", payload))
	}
}

// Visible is the filtered subset in stored order.
func (v *View[R]) Visible() []R {
	out := []R{}
	for _, r := range v.records {
		if v.dated {
			if d, ok := any(r).(record.Dated); ok && d.Day() != v.selectedDate {
				continue
			}
		}
		if v.selectedColor != "" && r.Tag() != v.selectedColor {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SelectDate sets the day filter to a YYYY-MM-DD day.
func (v *View[R]) SelectDate(iso string) error {
	if !v.dated {
		return fmt.Errorf("%s list has no date filter", kindOf[R]())
	}
	if !record.ValidISODate(iso) {
		return fmt.Errorf("day %q is not YYYY-MM-DD", iso)
	}
	v.selectedDate = iso
	return nil
}

// ShiftDate moves the day filter by days.
func (v *View[R]) ShiftDate(days int) error {
	if !v.dated {
		return fmt.Errorf("%s list has no date filter", kindOf[R]())
	}
	next, err := record.AddDays(v.selectedDate, days)
	if err != nil {
		return err
	}
	v.selectedDate = next
	return nil
}

// Today resets the day filter to the current day.
func (v *View[R]) Today() {
	if v.dated {
		v.selectedDate = record.Today(v.now(), v.loc)
	}
}

// ToggleColor filters by c, or clears the filter when c is already selected.
func (v *View[R]) ToggleColor(c record.Color) error {
	if !c.Valid() {
		return fmt.Errorf("color %q is not in the palette", c)
	}
	if v.selectedColor == c {
		v.selectedColor = ""
		return nil
	}
	v.selectedColor = c
	return nil
}

func kindOf[R record.Record]() record.Kind {
	var zero R
	return zero.RecordKind()
}

// Clear erases the whole collection.
func (v *View[R]) Clear(ctx context.Context) error {
	if err := v.store.SaveAll(ctx, []R{}); err != nil {
		return err
	}
	v.records = []R{}
	return nil
}
