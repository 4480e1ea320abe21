package record

import "strings"

// Kind names a record schema.
type Kind string

const (
	KindMark     Kind = "mark"
	KindHomework Kind = "homework"
	KindTeacher  Kind = "teacher"
)

// Kinds lists every schema in tab order.
var Kinds = []Kind{KindMark, KindHomework, KindTeacher}

// Record is implemented by every schema stored in a collection.
type Record interface {
	RecordID() string
	RecordKind() Kind
	Tag() Color
}

// Dated records carry a calendar day and can be filtered by it.
type Dated interface {
	Record
	Day() string
}

// Photo references an image picked from the device. Placeholder marks the
// built-in default image used when no photo was picked.
type Photo struct {
	URI         string `json:"uri,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// PlaceholderPhoto is the default homework image.
func PlaceholderPhoto() Photo { return Photo{Placeholder: true} }

// Mark represents a grade.
type Mark struct {
	ID      string `json:"id" validate:"required"`
	Mark    int    `json:"mark" validate:"min=1,max=5"`
	Subject string `json:"subject" validate:"notblank"`
	Reason  string `json:"reason" validate:"notblank"`
	Date    string `json:"date" validate:"ddmmyy"`
	DateISO string `json:"dateISO" validate:"isodate"`
	Color   Color  `json:"color" validate:"palette"`
}

func (m Mark) RecordID() string { return m.ID }
func (m Mark) RecordKind() Kind { return KindMark }
func (m Mark) Tag() Color       { return m.Color }
func (m Mark) Day() string      { return m.DateISO }

// Homework represents an assignment with one or more tasks.
type Homework struct {
	ID           string   `json:"id" validate:"required"`
	Subject      string   `json:"subject" validate:"notblank"`
	Tasks        []string `json:"tasks" validate:"min=1,dive,notblank"`
	DeadlineDate string   `json:"deadlineDate" validate:"ddmmyy"`
	DeadlineTime string   `json:"deadlineTime" validate:"hhmm"`
	Photo        Photo    `json:"photo"`
	Color        Color    `json:"color" validate:"palette"`
	DateISO      string   `json:"dateISO" validate:"isodate"`
	// Reason caches Tasks[0] for list rows.
	Reason    string `json:"reason"`
	Completed bool   `json:"completed"`
}

func (h Homework) RecordID() string { return h.ID }
func (h Homework) RecordKind() Kind { return KindHomework }
func (h Homework) Tag() Color       { return h.Color }
func (h Homework) Day() string      { return h.DateISO }

// Teacher represents a teacher card.
type Teacher struct {
	ID      string  `json:"id" validate:"required"`
	Name    string  `json:"name" validate:"notblank"`
	Subject string  `json:"subject" validate:"notblank"`
	Color   Color   `json:"color" validate:"palette"`
	Avatar  *Avatar `json:"avatar" validate:"omitempty,avatar"`
	Photo   *Photo  `json:"photo"`
}

func (t Teacher) RecordID() string { return t.ID }
func (t Teacher) RecordKind() Kind { return KindTeacher }
func (t Teacher) Tag() Color       { return t.Color }

// DisplayImage reports what the teacher card shows: the photo when one is
// set, otherwise the avatar. ok is false when neither is set.
func (t Teacher) DisplayImage() (photo *Photo, avatar *Avatar, ok bool) {
	if t.Photo != nil && strings.TrimSpace(t.Photo.URI) != "" {
		return t.Photo, nil, true
	}
	if t.Avatar != nil {
		return nil, t.Avatar, true
	}
	return nil, nil, false
}

// DefaultSubjects seeds the subject suggestions of every wizard.
var DefaultSubjects = []string{"History", "Maths", "English language", "Physical Education"}

// DefaultReasons seeds the reason suggestions of the mark wizard.
var DefaultReasons = []string{"Oral response", "Writing task", "Homework"}
