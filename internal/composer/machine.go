// Package composer drives the multi-step wizards that build or edit one
// record. A session is an explicit state machine: named input steps, each
// with its own check, followed by an editable Review state.
package composer

import (
	"errors"
	"fmt"

	"github.com/jask/studybunny/internal/delivery"
	"github.com/jask/studybunny/internal/record"
)

// State is a wizard step or one of the fixed states below.
type State string

const (
	Review    State = "review"
	Cancelled State = "cancelled"
	Finished  State = "finished"
)

// Event is a navigation action. Field edits are not events; see Machine.Edit.
type Event string

const (
	Next   Event = "next"
	Back   Event = "back"
	Finish Event = "finish"
)

var (
	ErrInvalidTransition = errors.New("composer: invalid transition")
	ErrSessionClosed     = errors.New("composer: session closed")
)

// ValidationError names the first unmet condition of a step.
type ValidationError struct {
	Step    State
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(step State, field, msg string) error {
	return &ValidationError{Step: step, Field: field, Message: msg}
}

// Step is one input screen of a wizard.
type Step struct {
	State State
	Title string
	Check func() error
}

func (s Step) check() error {
	if s.Check == nil {
		return nil
	}
	return s.Check()
}

// Transition computes the state after ev. On a failed check it returns the
// current state together with the check's error.
func Transition(steps []Step, cur State, ev Event) (State, error) {
	if cur == Cancelled || cur == Finished {
		return cur, ErrSessionClosed
	}
	idx := stepIndex(steps, cur)
	if cur != Review && idx < 0 {
		return cur, fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, cur)
	}
	switch ev {
	case Next:
		if cur == Review {
			return cur, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, cur)
		}
		if err := steps[idx].check(); err != nil {
			return cur, err
		}
		if idx == len(steps)-1 {
			return Review, nil
		}
		return steps[idx+1].State, nil
	case Back:
		if cur == Review {
			return steps[len(steps)-1].State, nil
		}
		if idx == 0 {
			return Cancelled, nil
		}
		return steps[idx-1].State, nil
	case Finish:
		if cur != Review {
			return cur, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, cur)
		}
		// every step, visited or not
		for _, s := range steps {
			if err := s.check(); err != nil {
				return cur, err
			}
		}
		return Finished, nil
	default:
		return cur, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev)
	}
}

func stepIndex(steps []Step, s State) int {
	for i, st := range steps {
		if st.State == s {
			return i
		}
	}
	return -1
}

// Form holds the in-progress fields of one schema.
type Form[R record.Record] interface {
	Kind() record.Kind
	Steps() []Step
	// Build assembles the payload; called only after every check passed.
	Build(id string) R
}

// Sink receives the finished payload.
type Sink[R record.Record] interface {
	Post(delivery.Message[R]) error
}

// Machine is one wizard session.
type Machine[R record.Record] struct {
	form       Form[R]
	steps      []Step
	state      State
	existingID string
	sink       Sink[R]
	payload    *R
}

// NewMachine starts a session. With a non-empty existingID the session edits
// that record and starts in Review.
func NewMachine[R record.Record](form Form[R], existingID string, sink Sink[R]) *Machine[R] {
	steps := form.Steps()
	state := steps[0].State
	if existingID != "" {
		state = Review
	}
	return &Machine[R]{form: form, steps: steps, state: state, existingID: existingID, sink: sink}
}

func (m *Machine[R]) State() State      { return m.state }
func (m *Machine[R]) Steps() []Step     { return m.steps }
func (m *Machine[R]) Form() Form[R]     { return m.form }
func (m *Machine[R]) Editing() bool     { return m.existingID != "" }
func (m *Machine[R]) Closed() bool      { return m.state == Cancelled || m.state == Finished }
func (m *Machine[R]) Kind() record.Kind { return m.form.Kind() }

// Position is the 1-based step number and the number of steps, Review included.
func (m *Machine[R]) Position() (int, int) {
	total := len(m.steps) + 1
	if m.state == Review {
		return total, total
	}
	return stepIndex(m.steps, m.state) + 1, total
}

// Title of the current step.
func (m *Machine[R]) Title() string {
	if idx := stepIndex(m.steps, m.state); idx >= 0 {
		return m.steps[idx].Title
	}
	return "Confirm and edit if needed"
}

// CanNext reports whether Next would pass the current step's check.
func (m *Machine[R]) CanNext() bool {
	idx := stepIndex(m.steps, m.state)
	if idx < 0 {
		return false
	}
	return m.steps[idx].check() == nil
}

// CanFinish reports whether Finish would succeed from Review.
func (m *Machine[R]) CanFinish() bool {
	if m.state != Review {
		return false
	}
	for _, s := range m.steps {
		if s.check() != nil {
			return false
		}
	}
	return true
}

// Edit applies a field mutation. Every open state accepts edits, Review included.
func (m *Machine[R]) Edit(fn func()) error {
	if m.Closed() {
		return ErrSessionClosed
	}
	fn()
	return nil
}

// Fire applies ev. A successful Finish builds the payload and posts it to the
// sink; if the post fails the session stays in Review.
func (m *Machine[R]) Fire(ev Event) (State, error) {
	next, err := Transition(m.steps, m.state, ev)
	if err != nil {
		return m.state, err
	}
	if next == Finished {
		kind, id := delivery.Updated, m.existingID
		if id == "" {
			kind, id = delivery.New, record.NewID()
		}
		payload := m.form.Build(id)
		if m.sink != nil {
			if err := m.sink.Post(delivery.Message[R]{Kind: kind, Payload: payload}); err != nil {
				return m.state, fmt.Errorf("deliver %s: %w", m.form.Kind(), err)
			}
		}
		m.payload = &payload
	}
	m.state = next
	return next, nil
}

// Payload is the record built by a successful Finish.
func (m *Machine[R]) Payload() (R, bool) {
	if m.payload == nil {
		var zero R
		return zero, false
	}
	return *m.payload, true
}
