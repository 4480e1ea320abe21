package listview

import (
	"context"

	"github.com/jask/studybunny/internal/collection"
	"github.com/jask/studybunny/internal/record"
)

// ToggleCompleted flips the completion flag of one homework and rewrites the
// collection. It reports false when id is not loaded.
func ToggleCompleted(ctx context.Context, v *View[record.Homework], id string) (bool, error) {
	idx := collection.IndexOf(v.records, id)
	if idx < 0 {
		return false, nil
	}
	v.records[idx].Completed = !v.records[idx].Completed
	if err := v.store.SaveAll(ctx, v.records); err != nil {
		v.records[idx].Completed = !v.records[idx].Completed
		return false, err
	}
	return true, nil
}

// Checklist is the per-task tick overlay of the homework detail view. It is
// scratch state: opening resets it and nothing is saved.
type Checklist struct {
	id      string
	checked []bool
}

func (c *Checklist) Open(hw record.Homework) {
	c.id = hw.ID
	c.checked = make([]bool, len(hw.Tasks))
}

func (c *Checklist) Close() {
	c.id = ""
	c.checked = nil
}

func (c *Checklist) IsOpen() bool { return c.id != "" }
func (c *Checklist) ID() string   { return c.id }

func (c *Checklist) Checked() []bool { return append([]bool(nil), c.checked...) }

func (c *Checklist) Toggle(i int) bool {
	if i < 0 || i >= len(c.checked) {
		return false
	}
	c.checked[i] = !c.checked[i]
	return true
}

// AllChecked is false for an empty list.
func (c *Checklist) AllChecked() bool {
	if len(c.checked) == 0 {
		return false
	}
	for _, v := range c.checked {
		if !v {
			return false
		}
	}
	return true
}

// ToggleAll clears every tick when all are set, otherwise sets them all.
func (c *Checklist) ToggleAll() {
	set := !c.AllChecked()
	for i := range c.checked {
		c.checked[i] = set
	}
}
