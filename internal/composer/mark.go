package composer

import (
	"fmt"

	"github.com/jask/studybunny/internal/record"
)

const (
	MarkStepGrade   State = "grade"
	MarkStepSubject State = "subject"
	MarkStepDetails State = "details"
)

// MarkForm collects a grade.
type MarkForm struct {
	grade   int
	Subject *Choice
	Reason  *Choice
	date    string
	color   record.Color
}

// NewMarkForm starts empty, or prefilled from existing.
func NewMarkForm(existing *record.Mark) *MarkForm {
	if existing == nil {
		return &MarkForm{
			Subject: NewChoice(record.DefaultSubjects, ""),
			Reason:  NewChoice(record.DefaultReasons, ""),
		}
	}
	return &MarkForm{
		grade:   existing.Mark,
		Subject: NewChoice(record.DefaultSubjects, existing.Subject),
		Reason:  NewChoice(record.DefaultReasons, existing.Reason),
		date:    existing.Date,
		color:   existing.Color,
	}
}

// NewMark opens a mark wizard delivering to sink.
func NewMark(existing *record.Mark, sink Sink[record.Mark]) (*Machine[record.Mark], *MarkForm) {
	form := NewMarkForm(existing)
	id := ""
	if existing != nil {
		id = existing.ID
	}
	return NewMachine[record.Mark](form, id, sink), form
}

func (f *MarkForm) Kind() record.Kind { return record.KindMark }

func (f *MarkForm) Grade() int          { return f.grade }
func (f *MarkForm) Date() string        { return f.date }
func (f *MarkForm) Color() record.Color { return f.color }

// SelectGrade picks one of the grades 1 to 5.
func (f *MarkForm) SelectGrade(n int) error {
	if n < 1 || n > 5 {
		return fmt.Errorf("mark %d is out of range 1-5", n)
	}
	f.grade = n
	return nil
}

// SetDate stores a calendar pick (YYYY-MM-DD) in display form.
func (f *MarkForm) SetDate(iso string) error {
	display, err := record.DisplayDate(iso)
	if err != nil {
		return err
	}
	f.date = display
	return nil
}

func (f *MarkForm) ToggleColor(c record.Color) error {
	next, err := toggleColor(f.color, c)
	f.color = next
	return err
}

func (f *MarkForm) Steps() []Step {
	return []Step{
		{State: MarkStepGrade, Title: "What mark did you get?", Check: func() error {
			if f.grade == 0 {
				return invalid(MarkStepGrade, "mark", "Pick a mark")
			}
			return nil
		}},
		{State: MarkStepSubject, Title: "Which subject?", Check: func() error {
			if _, ok := f.Subject.Selected(); !ok {
				return invalid(MarkStepSubject, "subject", "Pick or add a subject")
			}
			return nil
		}},
		{State: MarkStepDetails, Title: "What was it for?", Check: func() error {
			if _, ok := f.Reason.Selected(); !ok {
				return invalid(MarkStepDetails, "reason", "Pick or add a reason")
			}
			if f.date == "" {
				return invalid(MarkStepDetails, "date", "Pick a date")
			}
			if f.color == "" {
				return invalid(MarkStepDetails, "color", "Pick a colour")
			}
			return nil
		}},
	}
}

func (f *MarkForm) Build(id string) record.Mark {
	subject, _ := f.Subject.Selected()
	reason, _ := f.Reason.Selected()
	iso, _ := record.ISODate(f.date)
	return record.Mark{
		ID:      id,
		Mark:    f.grade,
		Subject: subject,
		Reason:  reason,
		Date:    f.date,
		DateISO: iso,
		Color:   f.color,
	}
}
