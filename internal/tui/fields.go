package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/studybunny/internal/composer"
	"github.com/jask/studybunny/internal/record"
)

// editFunc routes a form mutation through the session so closed sessions
// refuse it.
type editFunc func(func()) error

// field is one input of a wizard step. update reports consumed when it used
// the enter key itself.
type field interface {
	focus() tea.Cmd
	blur()
	update(msg tea.Msg) (consumed bool, cmd tea.Cmd, err error)
	view(focused bool) string
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = placeholder
	in.SetValue(value)
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func fieldLabel(label string, focused bool) string {
	return labelStyle.Render(label) + " " + marker(focused)
}

func isEnter(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	return ok && km.Type == tea.KeyEnter
}

func keyString(msg tea.Msg) string {
	if km, ok := msg.(tea.KeyMsg); ok {
		return km.String()
	}
	return ""
}

// textField mirrors free text into the form on every keystroke.
type textField struct {
	label string
	input textinput.Model
	apply func(string)
	hint  func() string
	edit  editFunc
}

func newTextField(label, placeholder, value string, edit editFunc, apply func(string)) *textField {
	return &textField{label: label, input: newInput(placeholder, value), apply: apply, edit: edit}
}

func (f *textField) focus() tea.Cmd { return f.input.Focus() }
func (f *textField) blur()          { f.input.Blur() }

func (f *textField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	var cmd tea.Cmd
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before {
		return false, cmd, f.edit(func() { f.apply(v) })
	}
	return false, cmd, nil
}

func (f *textField) view(focused bool) string {
	out := fieldLabel(f.label, focused) + "\n" + f.input.View()
	if f.hint != nil {
		if h := f.hint(); h != "" {
			out += "\n" + statusErrStyle.Render(h)
		}
	}
	return out
}

// gradeField picks a mark from 1 to 5.
type gradeField struct {
	get  func() int
	set  func(int) error
	edit editFunc
}

func (f *gradeField) focus() tea.Cmd { return nil }
func (f *gradeField) blur()          {}

func (f *gradeField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	next := 0
	switch k := keyString(msg); k {
	case "1", "2", "3", "4", "5":
		next, _ = strconv.Atoi(k)
	case "left", "h":
		next = max(f.get()-1, 1)
	case "right", "l":
		next = min(f.get()+1, 5)
	default:
		return false, nil, nil
	}
	var err error
	if editErr := f.edit(func() { err = f.set(next) }); editErr != nil {
		return false, nil, editErr
	}
	return false, nil, err
}

func (f *gradeField) view(focused bool) string {
	var b strings.Builder
	b.WriteString(fieldLabel("Mark", focused) + "\n")
	for n := 1; n <= 5; n++ {
		if n == f.get() {
			fmt.Fprintf(&b, "[%d] ", n)
		} else {
			fmt.Fprintf(&b, " %d  ", n)
		}
	}
	return b.String()
}

// maxChoiceRows bounds the suggestion list under a choice field.
const maxChoiceRows = 6

// choiceField filters a Choice by typing; enter picks the highlighted
// option, or adds the typed text when nothing matches.
type choiceField struct {
	label  string
	choice *composer.Choice
	input  textinput.Model
	cursor int
	edit   editFunc
}

func newChoiceField(label string, c *composer.Choice, edit editFunc) *choiceField {
	return &choiceField{label: label, choice: c, input: newInput("type to search or add", c.Text()), edit: edit}
}

func (f *choiceField) focus() tea.Cmd { return f.input.Focus() }
func (f *choiceField) blur()          { f.input.Blur() }

func (f *choiceField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	opts := f.choice.Filtered()
	switch keyString(msg) {
	case "up":
		if f.cursor > 0 {
			f.cursor--
		}
		return false, nil, nil
	case "down":
		if f.cursor < len(opts)-1 {
			f.cursor++
		}
		return false, nil, nil
	case "ctrl+a":
		return f.create()
	case "enter":
		if _, ok := f.choice.Selected(); ok {
			return false, nil, nil
		}
		if len(opts) > 0 {
			pick := opts[min(f.cursor, len(opts)-1)]
			var err error
			if editErr := f.edit(func() { err = f.choice.Pick(pick) }); editErr != nil {
				return true, nil, editErr
			}
			f.input.SetValue(pick)
			f.input.CursorEnd()
			return true, nil, err
		}
		if f.choice.CanCreate() {
			return f.create()
		}
		return false, nil, nil
	}

	var cmd tea.Cmd
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before {
		f.cursor = 0
		return false, cmd, f.edit(func() { f.choice.SetText(v) })
	}
	return false, cmd, nil
}

func (f *choiceField) create() (bool, tea.Cmd, error) {
	var created string
	err := f.edit(func() { created, _ = f.choice.Create() })
	if err != nil || created == "" {
		return false, nil, err
	}
	f.input.SetValue(created)
	f.input.CursorEnd()
	return true, nil, nil
}

func (f *choiceField) view(focused bool) string {
	var b strings.Builder
	b.WriteString(fieldLabel(f.label, focused) + "\n" + f.input.View())
	if sel, ok := f.choice.Selected(); ok {
		b.WriteString("\n" + statusStyle.Render("✓ "+sel))
		return b.String()
	}
	if !focused {
		return b.String()
	}
	opts := f.choice.Filtered()
	for i, o := range opts {
		if i == maxChoiceRows {
			fmt.Fprintf(&b, "\n  … %d more", len(opts)-maxChoiceRows)
			break
		}
		fmt.Fprintf(&b, "\n%s %s", marker(i == f.cursor), o)
	}
	if f.choice.CanCreate() {
		fmt.Fprintf(&b, "\n%s", helpStyle.Render(fmt.Sprintf("ctrl+a: add %q", strings.TrimSpace(f.choice.Text()))))
		if s, ok := f.choice.Suggest(); ok {
			b.WriteString(helpStyle.Render("  did you mean " + s + "?"))
		}
	}
	return b.String()
}

// dateField takes a YYYY-MM-DD day; ctrl+t fills in today.
type dateField struct {
	label   string
	input   textinput.Model
	today   func() string
	set     func(iso string) error
	display func() string
	clear   func()
	edit    editFunc
}

func newDateField(label, display string, today func() string, edit editFunc, set func(string) error, get func() string) *dateField {
	iso, _ := record.ISODate(display)
	return &dateField{label: label, input: newInput("YYYY-MM-DD", iso), today: today, set: set, display: get, edit: edit}
}

func (f *dateField) focus() tea.Cmd { return f.input.Focus() }
func (f *dateField) blur()          { f.input.Blur() }

func (f *dateField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	switch keyString(msg) {
	case "ctrl+t":
		f.input.SetValue(f.today())
		f.input.CursorEnd()
		return false, nil, f.apply()
	case "ctrl+x":
		if f.clear == nil {
			return false, nil, nil
		}
		f.input.SetValue("")
		return false, nil, f.edit(f.clear)
	}
	var cmd tea.Cmd
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		return false, cmd, f.apply()
	}
	return false, cmd, nil
}

// apply stores the typed day once it is complete.
func (f *dateField) apply() error {
	v := strings.TrimSpace(f.input.Value())
	if !record.ValidISODate(v) {
		return nil
	}
	var err error
	if editErr := f.edit(func() { err = f.set(v) }); editErr != nil {
		return editErr
	}
	return err
}

func (f *dateField) view(focused bool) string {
	out := fieldLabel(f.label, focused) + "\n" + f.input.View()
	if d := f.display(); d != "" {
		out += "  " + statusStyle.Render(d)
	}
	if focused {
		help := "ctrl+t: today"
		if f.clear != nil {
			help += "  ctrl+x: clear due date, time and colour"
		}
		out += "\n" + helpStyle.Render(help)
	}
	return out
}

// colorField toggles one palette color; picking the chosen color clears it.
type colorField struct {
	cursor int
	get    func() record.Color
	toggle func(record.Color) error
	edit   editFunc
}

func (f *colorField) focus() tea.Cmd { return nil }
func (f *colorField) blur()          {}

func (f *colorField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	switch k := keyString(msg); k {
	case "left", "h":
		f.cursor = (f.cursor + len(record.Palette) - 1) % len(record.Palette)
	case "right", "l":
		f.cursor = (f.cursor + 1) % len(record.Palette)
	case " ", "1", "2", "3", "4":
		if k != " " {
			f.cursor, _ = strconv.Atoi(k)
			f.cursor--
		}
		c := record.Palette[f.cursor]
		var err error
		if editErr := f.edit(func() { err = f.toggle(c) }); editErr != nil {
			return false, nil, editErr
		}
		return false, nil, err
	}
	return false, nil, nil
}

func (f *colorField) view(focused bool) string {
	var b strings.Builder
	b.WriteString(fieldLabel("Colour", focused) + "\n")
	for i, c := range record.Palette {
		sel := " "
		if f.get() == c {
			sel = "✓"
		}
		if focused && i == f.cursor {
			fmt.Fprintf(&b, "[%s%s] ", swatch(c), sel)
		} else {
			fmt.Fprintf(&b, " %s%s  ", swatch(c), sel)
		}
	}
	if focused {
		b.WriteString("\n" + helpStyle.Render("←/→ move  space: pick"))
	}
	return b.String()
}

// tasksField appends a task on enter; ctrl+d drops the last one.
type tasksField struct {
	input textinput.Model
	form  *composer.HomeworkForm
	edit  editFunc
}

func (f *tasksField) focus() tea.Cmd { return f.input.Focus() }
func (f *tasksField) blur()          { f.input.Blur() }

func (f *tasksField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	switch {
	case isEnter(msg):
		text := f.input.Value()
		if strings.TrimSpace(text) == "" {
			return false, nil, nil
		}
		f.input.SetValue("")
		return true, nil, f.edit(func() { f.form.AddTask(text) })
	case keyString(msg) == "ctrl+d":
		n := len(f.form.Tasks())
		return false, nil, f.edit(func() { f.form.RemoveTask(n - 1) })
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return false, cmd, nil
}

func (f *tasksField) view(focused bool) string {
	var b strings.Builder
	b.WriteString(fieldLabel("Tasks", focused))
	for i, t := range f.form.Tasks() {
		fmt.Fprintf(&b, "\n %d. %s", i+1, t)
	}
	b.WriteString("\n" + f.input.View())
	if focused {
		b.WriteString("\n" + helpStyle.Render("enter: add task  ctrl+d: remove last"))
	}
	return b.String()
}

// photoField resolves a typed path through the picker on enter.
type photoField struct {
	input  textinput.Model
	picker PhotoPicker
	set    func(composer.PhotoResult) bool
	clear  func()
	uri    func() string
	empty  string
	edit   editFunc
}

func (f *photoField) focus() tea.Cmd { return f.input.Focus() }
func (f *photoField) blur()          { f.input.Blur() }

func (f *photoField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	switch {
	case isEnter(msg):
		if strings.TrimSpace(f.input.Value()) == "" {
			return false, nil, nil
		}
		res, err := f.picker.Pick(f.input.Value())
		if err != nil {
			return true, nil, err
		}
		f.input.SetValue("")
		return true, nil, f.edit(func() { f.set(res) })
	case keyString(msg) == "ctrl+x" && f.clear != nil:
		return false, nil, f.edit(f.clear)
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return false, cmd, nil
}

func (f *photoField) view(focused bool) string {
	current := f.uri()
	if current == "" {
		current = f.empty
	}
	out := fieldLabel("Photo", focused) + " " + helpStyle.Render(current) + "\n" + f.input.View()
	if focused {
		help := "enter: attach file"
		if f.clear != nil {
			help += "  ctrl+x: remove photo"
		}
		out += "\n" + helpStyle.Render(help)
	}
	return out
}

// avatarField picks one of the preset characters with 1-3.
type avatarField struct {
	form *composer.TeacherForm
	edit editFunc
}

func (f *avatarField) focus() tea.Cmd { return nil }
func (f *avatarField) blur()          {}

func (f *avatarField) update(msg tea.Msg) (bool, tea.Cmd, error) {
	k := keyString(msg)
	n, err := strconv.Atoi(k)
	if err != nil || n < 1 || n > len(record.Avatars) {
		return false, nil, nil
	}
	a := record.Avatars[n-1]
	var chooseErr error
	if editErr := f.edit(func() { chooseErr = f.form.ChooseAvatar(a) }); editErr != nil {
		return false, nil, editErr
	}
	return false, nil, chooseErr
}

func (f *avatarField) view(focused bool) string {
	var b strings.Builder
	b.WriteString(fieldLabel("Character", focused) + "\n")
	for i, a := range record.Avatars {
		on := f.form.Avatar() == a
		fmt.Fprintf(&b, "%d %s %s  ", i+1, check(on), a)
	}
	if f.form.PhotoURI() != "" && f.form.Avatar() != "" {
		b.WriteString("\n" + helpStyle.Render("the photo is shown instead of the character"))
	}
	return b.String()
}
