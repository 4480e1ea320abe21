package tui

import (
	"fmt"
	"strings"

	"github.com/jask/studybunny/internal/listview"
	"github.com/jask/studybunny/internal/record"
)

func (a *App) renderFilters(sel record.Color) string {
	parts := make([]string, 0, len(record.FilterPalette))
	for _, c := range record.FilterPalette {
		key := c.Name()[:1]
		label := fmt.Sprintf("[%s]%s %s", key, c.Name()[1:], swatch(c))
		if c == sel {
			label = activeTabStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderDateHeader(iso string) string {
	header := listview.HeaderDate(iso, a.cfg.UI.HeaderDateFormat)
	if iso == a.today() {
		header += " (today)"
	}
	return titleStyle.Render(header)
}

func (a *App) renderMarks() string {
	v := a.tracker.Marks
	out := a.renderDateHeader(v.SelectedDate()) + "\n" + a.renderFilters(v.SelectedColor()) + "\n\n"
	visible := v.Visible()
	if len(visible) == 0 {
		out += helpStyle.Render("No marks for this day.") + "\n"
	}
	for i, m := range visible {
		out += fmt.Sprintf("%s %s %d  %-20s %-20s %s\n", marker(i == a.cursor[viewMarks]), swatch(m.Color), m.Mark, m.Subject, m.Reason, m.Date)
	}
	out += "\n" + helpStyle.Render("[n] New  [e] Edit  [←/→] Day  [.] Today  [r/b/o/g] Colour  [h] Homework  [t] Teachers  [p] Settings  [q] Quit")
	return out
}

func (a *App) renderHomework() string {
	v := a.tracker.Homework
	out := a.renderDateHeader(v.SelectedDate()) + "\n" + a.renderFilters(v.SelectedColor()) + "\n\n"
	visible := v.Visible()
	if len(visible) == 0 {
		out += helpStyle.Render("No homework due this day.") + "\n"
	}
	for i, hw := range visible {
		row := fmt.Sprintf("%s %-20s Until %s", check(hw.Completed), hw.Subject+": "+hw.Reason, listview.DueLine(hw.DateISO, hw.DeadlineTime))
		if hw.Completed {
			row = doneStyle.Render(row)
		}
		out += fmt.Sprintf("%s %s %s\n", marker(i == a.cursor[viewHomework]), swatch(hw.Color), row)
	}
	out += "\n" + helpStyle.Render("[n] New  [enter] Open  [space] Done  [e] Edit  [←/→] Day  [.] Today  [r/b/o/g] Colour  [m] Marks  [t] Teachers  [p] Settings  [q] Quit")
	return out
}

func (a *App) renderDetail() string {
	hw, ok := a.tracker.Homework.Find(a.checklist.ID())
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(hw.Subject) + " " + swatch(hw.Color) + "\n")
	due := "Until " + listview.DueLine(hw.DateISO, hw.DeadlineTime)
	if hw.Completed {
		due = doneStyle.Render(due + " (done)")
	}
	b.WriteString(due + "\n")
	photo := "default picture"
	if hw.Photo.URI != "" {
		photo = hw.Photo.URI
	}
	b.WriteString(helpStyle.Render("Photo: "+photo) + "\n\n")

	checked := a.checklist.Checked()
	for i, t := range hw.Tasks {
		on := i < len(checked) && checked[i]
		fmt.Fprintf(&b, "%s %s %s\n", marker(i == a.taskIdx), check(on), t)
	}
	b.WriteString("\n" + helpStyle.Render("[space] Tick  [a] Tick all  [c] Done  [e] Edit  [esc] Close"))
	return cardStyle.Render(b.String())
}

func (a *App) renderTeachers() string {
	v := a.tracker.Teachers
	out := titleStyle.Render("Teachers") + "\n" + a.renderFilters(v.SelectedColor()) + "\n\n"
	visible := v.Visible()
	if len(visible) == 0 {
		out += helpStyle.Render("No teachers yet.") + "\n"
	}
	for i, t := range visible {
		out += fmt.Sprintf("%s %s %-24s %-20s %s\n", marker(i == a.cursor[viewTeachers]), swatch(t.Color), t.Name, t.Subject, teacherImage(t))
	}
	out += "\n" + helpStyle.Render("[n] New  [e] Edit  [r/b/o/g] Colour  [m] Marks  [h] Homework  [p] Settings  [q] Quit")
	return out
}

func teacherImage(t record.Teacher) string {
	photo, avatar, ok := t.DisplayImage()
	switch {
	case !ok:
		return ""
	case photo != nil:
		return helpStyle.Render("photo")
	default:
		return helpStyle.Render(string(*avatar))
	}
}

func (a *App) renderSettings() string {
	out := titleStyle.Render("Settings") + "\n"
	state := "off"
	if a.cfg.Settings.Notifications {
		state = "on"
	}
	out += fmt.Sprintf("Notifications: %s %s\n", state, helpStyle.Render("(coming soon)"))
	out += fmt.Sprintf("Storage: %s at %s\n", a.cfg.Store.Driver, a.cfg.Store.Path)
	out += fmt.Sprintf("Timezone: %s\n", a.tz)
	out += "\n[space] Toggle notifications  [d] Sample data  [x] Erase all data\n"
	out += helpStyle.Render("[m] Marks  [h] Homework  [t] Teachers  [q] Quit")
	return out
}
