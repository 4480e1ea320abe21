package composer

import (
	"strings"

	"github.com/jask/studybunny/internal/record"
)

const (
	HomeworkStepSubject  State = "subject"
	HomeworkStepTasks    State = "tasks"
	HomeworkStepDeadline State = "deadline"
	HomeworkStepPhoto    State = "photo"
)

const wrongTimeMessage = "Wrong time format: enter time as HH:mm, e.g. 09:30 or 18:05"

// HomeworkForm collects an assignment.
type HomeworkForm struct {
	Subject      *Choice
	tasks        []string
	deadlineDate string
	deadlineTime string
	color        record.Color
	photoURI     string
	// completed is carried through edits untouched.
	completed bool
}

func NewHomeworkForm(existing *record.Homework) *HomeworkForm {
	if existing == nil {
		return &HomeworkForm{Subject: NewChoice(record.DefaultSubjects, "")}
	}
	return &HomeworkForm{
		Subject:      NewChoice(record.DefaultSubjects, existing.Subject),
		tasks:        append([]string(nil), existing.Tasks...),
		deadlineDate: existing.DeadlineDate,
		deadlineTime: existing.DeadlineTime,
		color:        existing.Color,
		photoURI:     existing.Photo.URI,
		completed:    existing.Completed,
	}
}

// NewHomework opens a homework wizard delivering to sink.
func NewHomework(existing *record.Homework, sink Sink[record.Homework]) (*Machine[record.Homework], *HomeworkForm) {
	form := NewHomeworkForm(existing)
	id := ""
	if existing != nil {
		id = existing.ID
	}
	return NewMachine[record.Homework](form, id, sink), form
}

func (f *HomeworkForm) Kind() record.Kind { return record.KindHomework }

func (f *HomeworkForm) Tasks() []string      { return append([]string(nil), f.tasks...) }
func (f *HomeworkForm) DeadlineDate() string { return f.deadlineDate }
func (f *HomeworkForm) DeadlineTime() string { return f.deadlineTime }
func (f *HomeworkForm) Color() record.Color  { return f.color }
func (f *HomeworkForm) PhotoURI() string     { return f.photoURI }

// AddTask appends the trimmed text; blank text is ignored.
func (f *HomeworkForm) AddTask(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	f.tasks = append(f.tasks, t)
	return true
}

func (f *HomeworkForm) RemoveTask(i int) bool {
	if i < 0 || i >= len(f.tasks) {
		return false
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return true
}

// SetDeadlineDate stores a calendar pick (YYYY-MM-DD) in display form.
func (f *HomeworkForm) SetDeadlineDate(iso string) error {
	display, err := record.DisplayDate(iso)
	if err != nil {
		return err
	}
	f.deadlineDate = display
	return nil
}

// SetDeadlineTime stores the typed text as is; it is checked on Next.
func (f *HomeworkForm) SetDeadlineTime(s string) { f.deadlineTime = s }

// TimeError is the inline message for a typed but malformed time.
func (f *HomeworkForm) TimeError() string {
	if f.deadlineTime != "" && !record.ValidTime(f.deadlineTime) {
		return wrongTimeMessage
	}
	return ""
}

// ClearDeadline resets the date, time and color.
func (f *HomeworkForm) ClearDeadline() {
	f.deadlineDate, f.deadlineTime, f.color = "", "", ""
}

func (f *HomeworkForm) ToggleColor(c record.Color) error {
	next, err := toggleColor(f.color, c)
	f.color = next
	return err
}

// SetPhoto keeps the current photo when the pick was cancelled.
func (f *HomeworkForm) SetPhoto(res PhotoResult) bool {
	if !res.usable() {
		return false
	}
	f.photoURI = strings.TrimSpace(res.URI)
	return true
}

func (f *HomeworkForm) ClearPhoto() { f.photoURI = "" }

func (f *HomeworkForm) Steps() []Step {
	return []Step{
		{State: HomeworkStepSubject, Title: "Which subject?", Check: func() error {
			if _, ok := f.Subject.Selected(); !ok {
				return invalid(HomeworkStepSubject, "subject", "Missing subject")
			}
			return nil
		}},
		{State: HomeworkStepTasks, Title: "What do you need to do?", Check: func() error {
			if len(f.tasks) == 0 {
				return invalid(HomeworkStepTasks, "tasks", "Add at least one task")
			}
			return nil
		}},
		{State: HomeworkStepDeadline, Title: "When is it due?", Check: func() error {
			if f.deadlineDate == "" {
				return invalid(HomeworkStepDeadline, "deadlineDate", "Pick a due date")
			}
			if !record.ValidTime(f.deadlineTime) {
				return invalid(HomeworkStepDeadline, "deadlineTime", wrongTimeMessage)
			}
			if f.color == "" {
				return invalid(HomeworkStepDeadline, "color", "Pick a colour")
			}
			return nil
		}},
		{State: HomeworkStepPhoto, Title: "Add a photo (optional)"},
	}
}

func (f *HomeworkForm) Build(id string) record.Homework {
	subject, _ := f.Subject.Selected()
	iso, _ := record.ISODate(f.deadlineDate)
	photo := record.PlaceholderPhoto()
	if f.photoURI != "" {
		photo = record.Photo{URI: f.photoURI}
	}
	tasks := f.Tasks()
	return record.Homework{
		ID:           id,
		Subject:      subject,
		Tasks:        tasks,
		DeadlineDate: f.deadlineDate,
		DeadlineTime: f.deadlineTime,
		Photo:        photo,
		Color:        f.color,
		DateISO:      iso,
		Reason:       tasks[0],
		Completed:    f.completed,
	}
}
