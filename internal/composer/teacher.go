package composer

import (
	"fmt"
	"strings"

	"github.com/jask/studybunny/internal/record"
)

const (
	TeacherStepImage   State = "image"
	TeacherStepName    State = "name"
	TeacherStepSubject State = "subject"
)

// TeacherForm collects a teacher card. Subject is free text with the
// default subjects offered as suggestions.
type TeacherForm struct {
	photoURI string
	avatar   record.Avatar
	name     string
	Subject  *Choice
	color    record.Color
}

func NewTeacherForm(existing *record.Teacher) *TeacherForm {
	if existing == nil {
		return &TeacherForm{Subject: NewChoice(record.DefaultSubjects, "")}
	}
	f := &TeacherForm{
		name:    existing.Name,
		Subject: NewChoice(record.DefaultSubjects, existing.Subject),
		color:   existing.Color,
	}
	if existing.Photo != nil {
		f.photoURI = existing.Photo.URI
	}
	if existing.Avatar != nil {
		f.avatar = *existing.Avatar
	}
	return f
}

// NewTeacher opens a teacher wizard delivering to sink.
func NewTeacher(existing *record.Teacher, sink Sink[record.Teacher]) (*Machine[record.Teacher], *TeacherForm) {
	form := NewTeacherForm(existing)
	id := ""
	if existing != nil {
		id = existing.ID
	}
	return NewMachine[record.Teacher](form, id, sink), form
}

func (f *TeacherForm) Kind() record.Kind { return record.KindTeacher }

func (f *TeacherForm) PhotoURI() string      { return f.photoURI }
func (f *TeacherForm) Avatar() record.Avatar { return f.avatar }
func (f *TeacherForm) Name() string          { return f.name }
func (f *TeacherForm) Color() record.Color   { return f.color }

// PickPhoto sets the photo; a chosen avatar is retained underneath it.
func (f *TeacherForm) PickPhoto(res PhotoResult) bool {
	if !res.usable() {
		return false
	}
	f.photoURI = strings.TrimSpace(res.URI)
	return true
}

// ChooseAvatar selects a preset character and clears any photo.
func (f *TeacherForm) ChooseAvatar(a record.Avatar) error {
	if !a.Valid() {
		return fmt.Errorf("avatar %q is not a preset character", a)
	}
	f.avatar = a
	f.photoURI = ""
	return nil
}

func (f *TeacherForm) SetName(name string) { f.name = name }

func (f *TeacherForm) ToggleColor(c record.Color) error {
	next, err := toggleColor(f.color, c)
	f.color = next
	return err
}

func (f *TeacherForm) Steps() []Step {
	return []Step{
		{State: TeacherStepImage, Title: "Add a photo or choose a character", Check: func() error {
			if f.photoURI == "" && f.avatar == "" {
				return invalid(TeacherStepImage, "photo", "Add a photo or choose a character")
			}
			return nil
		}},
		{State: TeacherStepName, Title: "What is the teacher's name?", Check: func() error {
			if strings.TrimSpace(f.name) == "" {
				return invalid(TeacherStepName, "name", "Enter the teacher's name")
			}
			return nil
		}},
		{State: TeacherStepSubject, Title: "What do they teach?", Check: func() error {
			if strings.TrimSpace(f.Subject.Text()) == "" {
				return invalid(TeacherStepSubject, "subject", "Enter a subject")
			}
			if f.color == "" {
				return invalid(TeacherStepSubject, "color", "Pick a colour")
			}
			return nil
		}},
	}
}

func (f *TeacherForm) Build(id string) record.Teacher {
	t := record.Teacher{
		ID:      id,
		Name:    strings.TrimSpace(f.name),
		Subject: strings.TrimSpace(f.Subject.Text()),
		Color:   f.color,
	}
	if f.photoURI != "" {
		t.Photo = &record.Photo{URI: f.photoURI}
	}
	if f.avatar != "" {
		a := f.avatar
		t.Avatar = &a
	}
	return t
}
