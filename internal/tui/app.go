package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/studybunny/internal/config"
	"github.com/jask/studybunny/internal/delivery"
	"github.com/jask/studybunny/internal/listview"
	"github.com/jask/studybunny/internal/record"
	"github.com/jask/studybunny/internal/service"
)

// App ties together the tabs and the wizard stack.
type App struct {
	ctx         context.Context
	cfg         config.Config
	tracker     *service.Tracker
	maintenance *service.MaintenanceService
	photos      PhotoPicker
	saveConfig  func(config.Config) error
	tz          *time.Location
	now         func() time.Time

	state     appState
	modal     modalState
	stack     ScreenStack
	cursor    map[appState]int
	checklist listview.Checklist
	taskIdx   int
	status    string
	statusErr bool
	width     int
	height    int
}

// Options carries the collaborators New does not build itself.
type Options struct {
	Maintenance *service.MaintenanceService
	Photos      PhotoPicker
	SaveConfig  func(config.Config) error
	Now         func() time.Time
}

type appState string

const (
	viewMarks    appState = delivery.ScreenMarks
	viewHomework appState = delivery.ScreenHomework
	viewTeachers appState = delivery.ScreenTeachers
	viewSettings appState = "SettingsTab"
)

var tabs = []appState{viewMarks, viewHomework, viewTeachers, viewSettings}

func (s appState) label() string {
	switch s {
	case viewMarks:
		return "Marks"
	case viewHomework:
		return "Homework"
	case viewTeachers:
		return "Teachers"
	default:
		return "Settings"
	}
}

type modalState string

const (
	modalNone         modalState = ""
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, tracker *service.Tracker, tz *time.Location, opts Options) *App {
	if tz == nil {
		tz = time.Local
	}
	if opts.Photos == nil {
		opts.Photos = FilePhotos{Validator: record.NewValidator()}
	}
	if opts.SaveConfig == nil {
		opts.SaveConfig = config.Save
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &App{
		ctx:         ctx,
		cfg:         cfg,
		tracker:     tracker,
		maintenance: opts.Maintenance,
		photos:      opts.Photos,
		saveConfig:  opts.SaveConfig,
		tz:          tz,
		now:         opts.Now,
		state:       viewMarks,
		cursor:      map[appState]int{},
	}
}

type loadMsg struct{}

type statusMsg string

// Init asks Update to load; persistence only ever runs inside Update.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg { return loadMsg{} }
}

func (a *App) today() string { return record.Today(a.now(), a.tz) }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case loadMsg:
		if err := a.tracker.Load(a.ctx); err != nil {
			a.setErr(err)
		}
		return a, nil
	case composedMsg:
		screen, err := a.tracker.Deliver(a.ctx, m.kind)
		if err != nil {
			a.setErr(err)
			return a, nil
		}
		a.state = appState(screen)
		a.cursor[a.state] = 0
		a.setStatus(fmt.Sprintf("%s saved", m.kind))
		return a, nil
	case statusMsg:
		a.setStatus(string(m))
		return a, nil
	}

	if top := a.stack.Top(); top != nil {
		next, cmd, done := top.Update(msg)
		if done {
			a.stack.Pop()
		} else if next != top {
			a.stack.Pop()
			a.stack.Push(next)
		}
		return a, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if a.modal != modalNone {
		return a.handleModalKey(km)
	}
	if a.checklist.IsOpen() {
		return a.handleDetailKey(km)
	}
	if a.state == viewSettings {
		return a.handleSettingsKey(km)
	}
	return a.handleListKey(km)
}

func (a *App) setStatus(s string) { a.status, a.statusErr = s, false }
func (a *App) setErr(err error)   { a.status, a.statusErr = "error: "+err.Error(), true }

// switchTab focuses the target list so it picks up anything delivered.
func (a *App) switchTab(s appState) {
	a.state = s
	a.status = ""
	var kind record.Kind
	switch s {
	case viewMarks:
		kind = record.KindMark
	case viewHomework:
		kind = record.KindHomework
	case viewTeachers:
		kind = record.KindTeacher
	default:
		return
	}
	if _, err := a.tracker.Deliver(a.ctx, kind); err != nil {
		a.setErr(err)
	}
}

func (a *App) handleTabKey(k string) bool {
	switch k {
	case "m":
		a.switchTab(viewMarks)
	case "h":
		a.switchTab(viewHomework)
	case "t":
		a.switchTab(viewTeachers)
	case "p":
		a.switchTab(viewSettings)
	case "tab":
		a.switchTab(tabs[(indexOf(a.state)+1)%len(tabs)])
	case "shift+tab":
		a.switchTab(tabs[(indexOf(a.state)+len(tabs)-1)%len(tabs)])
	default:
		return false
	}
	return true
}

func indexOf(s appState) int {
	for i, t := range tabs {
		if t == s {
			return i
		}
	}
	return 0
}

// filterKeys maps keys to the list filter colors.
var filterKeys = map[string]record.Color{
	"r": record.ColorRed,
	"b": record.ColorBlue,
	"o": record.ColorOrange,
	"g": record.ColorGreen,
}

func (a *App) visibleLen() int {
	switch a.state {
	case viewMarks:
		return len(a.tracker.Marks.Visible())
	case viewHomework:
		return len(a.tracker.Homework.Visible())
	case viewTeachers:
		return len(a.tracker.Teachers.Visible())
	default:
		return 0
	}
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.String()
	if a.handleTabKey(k) {
		return a, nil
	}
	switch k {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor[a.state] > 0 {
			a.cursor[a.state]--
		}
	case "down", "j":
		if a.cursor[a.state] < a.visibleLen()-1 {
			a.cursor[a.state]++
		}
	case "left", "right", ".":
		a.shiftDate(k)
	case "n":
		a.openWizard(nil)
	case "e":
		a.editSelected()
	case "enter":
		if a.state == viewHomework {
			if hw, ok := a.selectedHomework(); ok {
				a.checklist.Open(hw)
				a.taskIdx = 0
			}
			return a, nil
		}
		a.editSelected()
	case " ":
		if a.state == viewHomework {
			if hw, ok := a.selectedHomework(); ok {
				a.toggleCompleted(hw.ID)
			}
		}
	default:
		if c, ok := filterKeys[k]; ok {
			a.toggleFilter(c)
		}
	}
	return a, nil
}

func (a *App) shiftDate(k string) {
	var err error
	switch a.state {
	case viewMarks:
		err = shiftView(a.tracker.Marks, k)
	case viewHomework:
		err = shiftView(a.tracker.Homework, k)
	default:
		return
	}
	if err != nil {
		a.setErr(err)
	}
	a.cursor[a.state] = 0
}

func shiftView[R record.Record](v *listview.View[R], k string) error {
	switch k {
	case "left":
		return v.ShiftDate(-1)
	case "right":
		return v.ShiftDate(1)
	default:
		v.Today()
		return nil
	}
}

func (a *App) toggleFilter(c record.Color) {
	var err error
	switch a.state {
	case viewMarks:
		err = a.tracker.Marks.ToggleColor(c)
	case viewHomework:
		err = a.tracker.Homework.ToggleColor(c)
	case viewTeachers:
		err = a.tracker.Teachers.ToggleColor(c)
	}
	if err != nil {
		a.setErr(err)
	}
	a.cursor[a.state] = 0
}

func selected[R record.Record](v *listview.View[R], cursor int) (R, bool) {
	visible := v.Visible()
	if cursor < 0 || cursor >= len(visible) {
		var zero R
		return zero, false
	}
	return visible[cursor], true
}

func (a *App) selectedHomework() (record.Homework, bool) {
	return selected(a.tracker.Homework, a.cursor[viewHomework])
}

// openWizard pushes the wizard for the current tab; existing is the record
// to edit or nil.
func (a *App) openWizard(existing record.Record) {
	var w *wizardScreen
	switch a.state {
	case viewMarks:
		var m *record.Mark
		if r, ok := existing.(record.Mark); ok {
			m = &r
		}
		w = newMarkWizard(a.tracker, m, a.today)
	case viewHomework:
		var hw *record.Homework
		if r, ok := existing.(record.Homework); ok {
			hw = &r
		}
		w = newHomeworkWizard(a.tracker, hw, a.today, a.photos)
	case viewTeachers:
		var t *record.Teacher
		if r, ok := existing.(record.Teacher); ok {
			t = &r
		}
		w = newTeacherWizard(a.tracker, t, a.photos)
	default:
		return
	}
	a.status = ""
	a.stack.Push(w)
}

func (a *App) editSelected() {
	var (
		r  record.Record
		ok bool
	)
	switch a.state {
	case viewMarks:
		r, ok = selected(a.tracker.Marks, a.cursor[viewMarks])
	case viewHomework:
		r, ok = selected(a.tracker.Homework, a.cursor[viewHomework])
	case viewTeachers:
		r, ok = selected(a.tracker.Teachers, a.cursor[viewTeachers])
	}
	if ok {
		a.openWizard(r)
	}
}

func (a *App) toggleCompleted(id string) {
	if _, err := listview.ToggleCompleted(a.ctx, a.tracker.Homework, id); err != nil {
		a.setErr(err)
	}
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	hw, ok := a.tracker.Homework.Find(a.checklist.ID())
	if !ok {
		a.checklist.Close()
		return a, nil
	}
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "q":
		a.checklist.Close()
	case "up", "k":
		if a.taskIdx > 0 {
			a.taskIdx--
		}
	case "down", "j":
		if a.taskIdx < len(hw.Tasks)-1 {
			a.taskIdx++
		}
	case " ":
		a.checklist.Toggle(a.taskIdx)
	case "a":
		a.checklist.ToggleAll()
	case "c":
		a.toggleCompleted(hw.ID)
	case "e":
		a.checklist.Close()
		a.openWizard(hw)
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.String()
	if a.handleTabKey(k) {
		return a, nil
	}
	switch k {
	case "q", "ctrl+c":
		return a, tea.Quit
	case " ", "enter":
		a.cfg.Settings.Notifications = !a.cfg.Settings.Notifications
		if err := a.saveConfig(a.cfg); err != nil {
			a.setErr(err)
			return a, nil
		}
		a.setStatus("Notifications are coming soon")
	case "d":
		if a.maintenance == nil {
			a.setErr(fmt.Errorf("maintenance not configured"))
			return a, nil
		}
		rng := rand.New(rand.NewSource(a.now().UnixNano()))
		if err := a.maintenance.Sample(a.ctx, a.today(), rng); err != nil {
			a.setErr(err)
			return a, nil
		}
		a.setStatus("sample data added to empty lists")
	case "x":
		a.modal = modalConfirmReset
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			if a.maintenance == nil {
				a.setErr(fmt.Errorf("maintenance not configured"))
				return a, nil
			}
			if err := a.maintenance.Reset(a.ctx); err != nil {
				a.setErr(err)
				return a, nil
			}
			a.cursor = map[appState]int{}
			a.setStatus("all marks, homework and teachers erased")
		case "n", "N", "esc":
			a.modal = modalNone
		}
	}
	return a, nil
}

func (a *App) View() string {
	if top := a.stack.Top(); top != nil {
		return top.View(a.width, a.height) + a.renderStatus()
	}
	var body string
	switch {
	case a.checklist.IsOpen():
		body = a.renderDetail()
	case a.state == viewMarks:
		body = a.renderMarks()
	case a.state == viewHomework:
		body = a.renderHomework()
	case a.state == viewTeachers:
		body = a.renderTeachers()
	default:
		body = a.renderSettings()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return a.renderTabs() + "\n\n" + body + a.renderStatus()
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == a.state {
			parts = append(parts, activeTabStyle.Render(t.label()))
		} else {
			parts = append(parts, inactiveTabStyle.Render(t.label()))
		}
	}
	return strings.Join(parts, "|")
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return "\n" + statusErrStyle.Render(a.status)
	}
	return "\n" + statusStyle.Render(a.status)
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmReset:
		return titleStyle.Render("Erase everything?") + "\nThis deletes every mark, homework and teacher.\n[y] Yes  [n] No"
	default:
		return ""
	}
}
