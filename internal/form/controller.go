package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"patientor/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var (
	ErrClosed             = errors.New("entry form is closed")
	ErrSubmissionInFlight = errors.New("entry submission already in progress")
	ErrRejected           = errors.New("entry was rejected")
	// ErrEntryUnreadable is returned by an EntryCreator whose backend stored
	// the entry but answered with something that is not a valid entry.
	ErrEntryUnreadable    = errors.New("stored entry could not be read")
)

// EntryCreator stores a draft for a patient and returns the stored entry
type EntryCreator interface {
	CreateEntry(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error)
}

// UserMessager is implemented by errors whose message can be shown to the user as is
type UserMessager interface {
	UserMessage() string
}

// Controller owns one entry form instance of a patient page.
type Controller struct {
	mu sync.Mutex

	patientID   string
	state       State
	codeOptions []entity.DiagnosisCode
	closed      bool

	creator   EntryCreator
	validator Validator
	onAppend  func(entity.Entry)
	observers []func(State)
	notifier  *Notifier
	log       *logrus.Logger

	delay     time.Duration
	afterFunc AfterFunc
}

type Option func(*Controller)

// WithState starts the controller from a restored snapshot
func WithState(s State) Option {
	return func(c *Controller) { c.state = s.Restored() }
}

func WithCodeOptions(codes []entity.DiagnosisCode) Option {
	return func(c *Controller) { c.codeOptions = append([]entity.DiagnosisCode(nil), codes...) }
}

func WithNotificationDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) { c.afterFunc = f }
}

// WithObserver registers fn to receive every new state. fn runs while the
// controller is locked and must not call back into it.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) { c.observers = append(c.observers, fn) }
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// NewController creates the form of patientID. onAppend receives every entry
// the creator stores through this form.
func NewController(patientID string, creator EntryCreator, validator Validator, onAppend func(entity.Entry), opts ...Option) *Controller {
	c := &Controller{
		patientID: patientID,
		state:     NewState(),
		creator:   creator,
		validator: validator,
		onAppend:  onAppend,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.notifier = NewNotifier(c.delay, c.afterFunc)
	return c
}

func (c *Controller) PatientID() string {
	return c.patientID
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Inputs returns the input set of the active variant
func (c *Controller) Inputs() []Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Inputs(c.state, c.codeOptions)
}

// Snapshot returns the state and its input set taken under one lock
func (c *Controller) Snapshot() (State, []Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone(), Inputs(c.state, c.codeOptions)
}

// SetCodeOptions replaces the diagnosis codes offered by the multi-select
func (c *Controller) SetCodeOptions(codes []entity.DiagnosisCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codeOptions = append([]entity.DiagnosisCode(nil), codes...)
}

// Dispatch applies one user action
func (c *Controller) Dispatch(a Action) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return State{}, ErrClosed
	}

	next, err := Reduce(c.state, a)
	if err != nil {
		return c.state.Clone(), err
	}
	if c.state.Notification != nil && next.Notification == nil {
		c.notifier.Cancel()
	}
	c.setState(next)
	return next.Clone(), nil
}

// Cancel clears the shared fields and the active variant's fields
func (c *Controller) Cancel() (State, error) {
	return c.Dispatch(Action{Type: ActionCancel})
}

// Submit validates the form, builds the draft of the active variant and hands
// it to the creator.
//
// An ErrEntryUnreadable from the creator clears the form, since the entry
// was stored, and is returned as is. Any other rejection by the creator is reported as ErrRejected and shown as an error
// notification; the input is kept. On success the stored entry goes to
// onAppend and the form is cleared for the variant that was submitted. If the
// controller is closed while the creator runs, the response is dropped and
// ErrClosed is returned.
func (c *Controller) Submit(ctx context.Context) (entity.Entry, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.state.Phase == PhaseSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if err := Validate(c.validator, c.state); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	draft, err := BuildDraft(c.state)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	kind := c.state.Kind
	c.notifier.Cancel()
	c.setState(submitting(c.state))
	c.mu.Unlock()

	entry, err := c.creator.CreateEntry(ctx, c.patientID, draft)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.log.Infof("Discarding entry response for closed form of patient %s", c.patientID)
		return nil, ErrClosed
	}

	if errors.Is(err, ErrEntryUnreadable) {
		c.log.Errorf("Entry for patient %s was stored but its response is unreadable: %+v", c.patientID, err)
		c.setState(storedUnreadable(c.state, kind))
		c.scheduleClear()
		return nil, err
	}

	if err != nil {
		c.log.Warnf("Failed to create %s entry for patient %s: %+v", kind, c.patientID, err)
		c.setState(failed(c.state, userMessage(err)))
		c.scheduleClear()
		return nil, fmt.Errorf("%w: %w", ErrRejected, err)
	}

	c.onAppend(entry)
	c.setState(succeeded(c.state, kind))
	c.scheduleClear()
	return entry, nil
}

// Close detaches the controller from its page. Later responses are dropped
// and pending notification clears are stopped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.notifier.Cancel()
}

func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) scheduleClear() {
	c.notifier.Schedule(func(gen uint64) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || !c.notifier.Current(gen) {
			return
		}
		c.notifier.Cancel()
		c.setState(notificationExpired(c.state))
	})
}

func (c *Controller) setState(s State) {
	c.state = s
	for _, fn := range c.observers {
		fn(s.Clone())
	}
}

func userMessage(err error) string {
	var um UserMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return err.Error()
}
