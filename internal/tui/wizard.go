package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/studybunny/internal/composer"
	"github.com/jask/studybunny/internal/record"
	"github.com/jask/studybunny/internal/service"
)

// session is the schema-independent face of a composer.Machine.
type session interface {
	State() composer.State
	Steps() []composer.Step
	Fire(composer.Event) (composer.State, error)
	Edit(func()) error
	Position() (int, int)
	Title() string
	Kind() record.Kind
	Editing() bool
	CanNext() bool
	CanFinish() bool
}

// composedMsg tells the app a wizard finished and its record is waiting in
// the owning mailbox.
type composedMsg struct{ kind record.Kind }

// wizardScreen renders one composer session. Review shows every field at
// once and stays editable.
type wizardScreen struct {
	sess   session
	fields map[composer.State][]field
	focus  int
	err    string
}

func newWizardScreen(sess session, fields map[composer.State][]field) *wizardScreen {
	w := &wizardScreen{sess: sess, fields: fields}
	if active := w.active(); len(active) > 0 {
		active[0].focus()
	}
	return w
}

func (w *wizardScreen) Title() string {
	verb := "New"
	if w.sess.Editing() {
		verb = "Edit"
	}
	return verb + " " + string(w.sess.Kind())
}

// active lists the fields of the current state in display order.
func (w *wizardScreen) active() []field {
	if w.sess.State() != composer.Review {
		return w.fields[w.sess.State()]
	}
	var all []field
	for _, s := range w.sess.Steps() {
		all = append(all, w.fields[s.State]...)
	}
	return all
}

func (w *wizardScreen) setFocus(i int) tea.Cmd {
	active := w.active()
	if len(active) == 0 {
		w.focus = 0
		return nil
	}
	if w.focus < len(active) {
		active[w.focus].blur()
	}
	w.focus = (i + len(active)) % len(active)
	return active[w.focus].focus()
}

// reset blurs everything and focuses the first field of the new state.
func (w *wizardScreen) reset() tea.Cmd {
	for _, fs := range w.fields {
		for _, f := range fs {
			f.blur()
		}
	}
	w.focus = 0
	if active := w.active(); len(active) > 0 {
		return active[0].focus()
	}
	return nil
}

func (w *wizardScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if active := w.active(); w.focus < len(active) {
			_, cmd, _ := active[w.focus].update(msg)
			return w, cmd, false
		}
		return w, nil, false
	}

	switch km.String() {
	case "ctrl+c":
		return w, tea.Quit, false
	case "esc":
		state, err := w.sess.Fire(composer.Back)
		if err != nil {
			w.err = err.Error()
			return w, nil, false
		}
		if state == composer.Cancelled {
			return w, statusCmd("discarded"), true
		}
		w.err = ""
		return w, w.reset(), false
	case "tab":
		return w, w.setFocus(w.focus + 1), false
	case "shift+tab":
		return w, w.setFocus(w.focus - 1), false
	case "ctrl+s":
		if w.sess.State() == composer.Review {
			return w.finish()
		}
	}

	var consumed bool
	var cmd tea.Cmd
	if active := w.active(); w.focus < len(active) {
		var err error
		consumed, cmd, err = active[w.focus].update(km)
		if err != nil {
			w.err = err.Error()
			return w, cmd, false
		}
		if consumed {
			w.err = ""
		}
	}
	if km.Type != tea.KeyEnter || consumed {
		return w, cmd, false
	}
	if w.sess.State() == composer.Review {
		return w.finish()
	}
	if _, err := w.sess.Fire(composer.Next); err != nil {
		w.err = err.Error()
		return w, cmd, false
	}
	w.err = ""
	return w, w.reset(), false
}

func (w *wizardScreen) finish() (Screen, tea.Cmd, bool) {
	if _, err := w.sess.Fire(composer.Finish); err != nil {
		w.err = err.Error()
		return w, nil, false
	}
	kind := w.sess.Kind()
	return w, func() tea.Msg { return composedMsg{kind: kind} }, true
}

func (w *wizardScreen) View(width, height int) string {
	var b strings.Builder
	cur, total := w.sess.Position()
	b.WriteString(titleStyle.Render(w.Title()) + "\n")
	fmt.Fprintf(&b, "Step %d of %d · %s\n\n", cur, total, w.sess.Title())

	active := w.active()
	if w.sess.State() == composer.Review {
		i := 0
		for _, s := range w.sess.Steps() {
			b.WriteString(helpStyle.Render(s.Title) + "\n")
			for _, f := range w.fields[s.State] {
				b.WriteString(f.view(i == w.focus) + "\n")
				i++
			}
			b.WriteString("\n")
		}
	} else {
		for i, f := range active {
			b.WriteString(f.view(i == w.focus) + "\n\n")
		}
	}

	if w.err != "" {
		b.WriteString(statusErrStyle.Render(w.err) + "\n")
	}
	b.WriteString(helpStyle.Render(w.help()))
	return b.String()
}

func (w *wizardScreen) help() string {
	if w.sess.State() == composer.Review {
		save := "enter/ctrl+s: save"
		if !w.sess.CanFinish() {
			save = "save (complete the fields first)"
		}
		return save + "  tab: next field  esc: back"
	}
	next := "enter: next"
	if !w.sess.CanNext() {
		next = "next (complete this step first)"
	}
	back := "esc: back"
	if cur, _ := w.sess.Position(); cur == 1 {
		back = "esc: discard"
	}
	return next + "  tab: next field  " + back
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg(text) }
}

func newMarkWizard(tr *service.Tracker, existing *record.Mark, today func() string) *wizardScreen {
	m, f := tr.ComposeMark(existing)
	edit := editFunc(m.Edit)
	return newWizardScreen(m, map[composer.State][]field{
		composer.MarkStepGrade:   {&gradeField{get: f.Grade, set: f.SelectGrade, edit: edit}},
		composer.MarkStepSubject: {newChoiceField("Subject", f.Subject, edit)},
		composer.MarkStepDetails: {
			newChoiceField("Reason", f.Reason, edit),
			newDateField("Date", f.Date(), today, edit, f.SetDate, f.Date),
			&colorField{get: f.Color, toggle: f.ToggleColor, edit: edit},
		},
	})
}

func newHomeworkWizard(tr *service.Tracker, existing *record.Homework, today func() string, photos PhotoPicker) *wizardScreen {
	m, f := tr.ComposeHomework(existing)
	edit := editFunc(m.Edit)

	due := newDateField("Due date", f.DeadlineDate(), today, edit, f.SetDeadlineDate, f.DeadlineDate)
	at := newTextField("Time (HH:mm)", "09:30", f.DeadlineTime(), edit, f.SetDeadlineTime)
	at.hint = f.TimeError
	due.clear = func() {
		f.ClearDeadline()
		at.input.SetValue("")
	}

	return newWizardScreen(m, map[composer.State][]field{
		composer.HomeworkStepSubject:  {newChoiceField("Subject", f.Subject, edit)},
		composer.HomeworkStepTasks:    {&tasksField{input: newInput("e.g. Read chapter 3", ""), form: f, edit: edit}},
		composer.HomeworkStepDeadline: {due, at, &colorField{get: f.Color, toggle: f.ToggleColor, edit: edit}},
		composer.HomeworkStepPhoto: {&photoField{
			input:  newInput("path to an image (optional)", ""),
			picker: photos,
			set:    f.SetPhoto,
			clear:  f.ClearPhoto,
			uri:    f.PhotoURI,
			empty:  "(default picture)",
			edit:   edit,
		}},
	})
}

func newTeacherWizard(tr *service.Tracker, existing *record.Teacher, photos PhotoPicker) *wizardScreen {
	m, f := tr.ComposeTeacher(existing)
	edit := editFunc(m.Edit)
	return newWizardScreen(m, map[composer.State][]field{
		composer.TeacherStepImage: {
			&photoField{
				input:  newInput("path to an image", ""),
				picker: photos,
				set:    f.PickPhoto,
				uri:    f.PhotoURI,
				empty:  "(none)",
				edit:   edit,
			},
			&avatarField{form: f, edit: edit},
		},
		composer.TeacherStepName:    {newTextField("Name", "e.g. Ms Smith", f.Name(), edit, f.SetName)},
		composer.TeacherStepSubject: {newChoiceField("Subject", f.Subject, edit), &colorField{get: f.Color, toggle: f.ToggleColor, edit: edit}},
	})
}
