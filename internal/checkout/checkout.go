// Package checkout implements the three-step checkout flow as an explicit
// state machine: Shipping -> Payment -> Confirmation, strictly linear. Each
// forward transition is gated by that step's form validation; the only
// backward edge is Payment -> Shipping. Validation failures are per-field
// messages, never Go errors escaping a submit.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Step identifies the active checkout step.
type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepConfirmation
)

// String returns the step's display title.
func (s Step) String() string {
	switch s {
	case StepShipping:
		return "Shipping"
	case StepPayment:
		return "Payment"
	case StepConfirmation:
		return "Confirmation"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Event is a checkout state-machine input.
type Event int

const (
	EventSubmitShipping Event = iota
	EventSubmitPayment
	EventBack
	EventStartOver
)

func (e Event) String() string {
	switch e {
	case EventSubmitShipping:
		return "submit-shipping"
	case EventSubmitPayment:
		return "submit-payment"
	case EventBack:
		return "back"
	case EventStartOver:
		return "start-over"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// ErrInvalidTransition is returned when an event is not legal from the
// current step. Step order lives in this table, not in rendering code.
var ErrInvalidTransition = errors.New("checkout: invalid transition")

// ErrProcessing is returned when a submit arrives while the simulated
// payment call is still in flight.
var ErrProcessing = errors.New("checkout: payment already processing")

// transition is the full state table. Anything not listed is rejected.
func transition(from Step, ev Event) (Step, error) {
	switch {
	case from == StepShipping && ev == EventSubmitShipping:
		return StepPayment, nil
	case from == StepPayment && ev == EventBack:
		return StepShipping, nil
	case from == StepPayment && ev == EventSubmitPayment:
		return StepConfirmation, nil
	case from == StepConfirmation && ev == EventStartOver:
		return StepShipping, nil
	default:
		return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, from)
	}
}

// FieldErrors maps a form field name to its human-readable validation
// message. It is the checkout flow's only error kind.
type FieldErrors map[string]string

// Has reports whether the field currently carries an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// DefaultProcessingDelay stands in for the round trip of a real payment
// gateway call.
const DefaultProcessingDelay = 2 * time.Second

// Session owns one pass through checkout: the current step, both form
// payloads, and the in-flight payment state. A Session is discarded when the
// user exits checkout; form values survive Payment -> Shipping back
// navigation because the session, not the rendering layer, owns them.
type Session struct {
	ID string

	mu         sync.Mutex
	step       Step
	shipping   ShippingForm
	payment    PaymentForm
	processing bool
	order      *Order

	delay  time.Duration
	onExit func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithProcessingDelay overrides the simulated payment delay.
func WithProcessingDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

// WithExitHook sets the callback invoked by StartOver so the surrounding
// browsing context can reset (e.g. clear the cart display).
func WithExitHook(fn func()) SessionOption {
	return func(s *Session) { s.onExit = fn }
}

// NewSession starts a fresh checkout at the Shipping step.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		step:     StepShipping,
		shipping: NewShippingForm(),
		payment:  NewPaymentForm(),
		delay:    DefaultProcessingDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// IsProcessing reports whether the simulated payment call is in flight.
// The UI disables the submit control while this is true.
func (s *Session) IsProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

// Order returns the confirmation artifacts, or nil before Confirmation is
// reached.
func (s *Session) Order() *Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

// Shipping returns a pointer to the shipping form for field edits.
func (s *Session) Shipping() *ShippingForm { return &s.shipping }

// Payment returns a pointer to the payment form for field edits.
func (s *Session) Payment() *PaymentForm { return &s.payment }

// SubmitShipping validates the shipping form and advances to Payment when it
// passes. On failure the session stays at Shipping and the form carries the
// per-field messages.
func (s *Session) SubmitShipping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := transition(s.step, EventSubmitShipping)
	if err != nil {
		return false
	}
	if !s.shipping.Validate() {
		return false
	}
	s.step = next
	return true
}

// Back navigates from Payment to Shipping. No validation, no data loss.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing {
		return ErrProcessing
	}
	next, err := transition(s.step, EventBack)
	if err != nil {
		return err
	}
	s.step = next
	return nil
}

// SubmitPayment validates the payment form and, when it passes, marks the
// simulated payment call as in flight. The caller then runs ProcessPayment
// to complete the transition. A submit while processing is refused.
func (s *Session) SubmitPayment() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing {
		return false
	}
	if _, err := transition(s.step, EventSubmitPayment); err != nil {
		return false
	}
	if !s.payment.Validate() {
		return false
	}
	s.processing = true
	return true
}

// ProcessPayment waits out the simulated gateway delay, then transitions to
// Confirmation and mints the order artifacts. Cancelling ctx aborts the wait
// and leaves the session at Payment, ready for resubmission. ProcessPayment
// must follow a successful SubmitPayment.
func (s *Session) ProcessPayment(ctx context.Context) error {
	s.mu.Lock()
	if !s.processing {
		s.mu.Unlock()
		return errors.New("checkout: no payment submitted")
	}
	delay := s.delay
	s.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
		return ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := transition(s.step, EventSubmitPayment)
	if err != nil {
		s.processing = false
		return err
	}
	s.processing = false
	s.step = next
	s.order = NewOrder(time.Now())
	return nil
}

// StartOver resets the whole checkout session from Confirmation back to a
// blank Shipping step and notifies the surrounding context via the exit
// hook.
func (s *Session) StartOver() error {
	s.mu.Lock()
	next, err := transition(s.step, EventStartOver)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.step = next
	s.shipping = NewShippingForm()
	s.payment = NewPaymentForm()
	s.order = nil
	s.processing = false
	hook := s.onExit
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}
