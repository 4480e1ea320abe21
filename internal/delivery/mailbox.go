// Package delivery hands a composed record from a wizard back to the list
// screen that owns its collection. Each owning screen has one capacity-1
// mailbox; the screen consumes it exactly once.
package delivery

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jask/studybunny/internal/record"
)

var (
	// ErrOccupied is returned by Post while an earlier message is unconsumed.
	ErrOccupied = errors.New("delivery: previous record not yet received")
	// ErrEmptyID is returned by Post for a payload without an id.
	ErrEmptyID = errors.New("delivery: payload has no id")
)

// Kind tells the owner whether to append or replace.
type Kind string

const (
	New     Kind = "new"
	Updated Kind = "updated"
)

// Message is one composed record on its way to the owning screen.
type Message[R record.Record] struct {
	Kind    Kind
	Payload R
}

// Param is the parameter name the message travels under, e.g. newMark.
func (m Message[R]) Param() string {
	return Param(m.Kind, m.Payload.RecordKind())
}

// Param names the parameter slot for a delivery kind and schema.
func Param(k Kind, kind record.Kind) string {
	var suffix string
	switch kind {
	case record.KindMark:
		suffix = "Mark"
	case record.KindHomework:
		suffix = "Homework"
	case record.KindTeacher:
		suffix = "Teacher"
	default:
		panic(fmt.Sprintf("delivery: unknown record kind %q", kind))
	}
	return string(k) + suffix
}

// Screen names used by the navigation layer.
const (
	ScreenMarks    = "MarksTab"
	ScreenHomework = "HomeTab"
	ScreenTeachers = "TeachersTab"
)

// OwningScreen is the list screen a schema's composer returns to.
func OwningScreen(kind record.Kind) string {
	switch kind {
	case record.KindMark:
		return ScreenMarks
	case record.KindHomework:
		return ScreenHomework
	case record.KindTeacher:
		return ScreenTeachers
	default:
		panic(fmt.Sprintf("delivery: unknown record kind %q", kind))
	}
}

// Mailbox holds at most one undelivered message.
type Mailbox[R record.Record] struct {
	mu   sync.Mutex
	slot *Message[R]
}

func NewMailbox[R record.Record]() *Mailbox[R] { return &Mailbox[R]{} }

// Post places msg in the slot. It refuses to overwrite an unconsumed message.
func (m *Mailbox[R]) Post(msg Message[R]) error {
	if msg.Payload.RecordID() == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slot != nil {
		return fmt.Errorf("%w (%s)", ErrOccupied, m.slot.Param())
	}
	m.slot = &msg
	return nil
}

// Consume returns the pending message and clears the slot in one step.
func (m *Mailbox[R]) Consume() (Message[R], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slot == nil {
		return Message[R]{}, false
	}
	msg := *m.slot
	m.slot = nil
	return msg, true
}

// Peek returns the pending message and leaves it in the slot.
func (m *Mailbox[R]) Peek() (Message[R], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slot == nil {
		return Message[R]{}, false
	}
	return *m.slot, true
}

// Ack clears the slot once the peeked message has been handled. Post refuses
// while the slot is full, so the slot still holds that message.
func (m *Mailbox[R]) Ack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot = nil
}

// Pending reports whether a message is waiting.
func (m *Mailbox[R]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slot != nil
}
