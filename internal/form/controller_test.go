package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"patientor/internal/domain/entity"
	"patientor/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time check to ensure MockEntryCreator implements EntryCreator
var _ EntryCreator = (*MockEntryCreator)(nil)

type MockEntryCreator struct {
	CreateEntryFunc func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error)

	mu     sync.Mutex
	Drafts []entity.EntryDraft
}

func (m *MockEntryCreator) CreateEntry(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
	m.mu.Lock()
	m.Drafts = append(m.Drafts, draft)
	m.mu.Unlock()
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, patientID, draft)
	}
	return entity.EntryFromDraft("new-id", draft), nil
}

type fakeTimer struct {
	fn      func()
	delay   time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// fakeClock records scheduled callbacks so tests can fire them by hand
type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{fn: f, delay: d}
	c.timers = append(c.timers, t)
	return t
}

// fire runs timer i even if it was stopped, like a timer that already
// started its callback when Stop was called.
func (c *fakeClock) fire(i int) {
	c.timers[i].fn()
}

type apiError struct{ msg string }

func (e *apiError) Error() string       { return "patient api: 400: " + e.msg }
func (e *apiError) UserMessage() string { return e.msg }

func newTestController(creator EntryCreator, appended *[]entity.Entry, clock *fakeClock, opts ...Option) *Controller {
	opts = append([]Option{WithAfterFunc(clock.AfterFunc)}, opts...)
	return NewController("p-1", creator, validator.NewValidator(), func(e entity.Entry) {
		*appended = append(*appended, e)
	}, opts...)
}

func fillHealthCheck(t *testing.T, c *Controller) {
	t.Helper()
	for _, a := range []Action{
		{Type: ActionSetDescription, Value: "Annual checkup"},
		{Type: ActionSetDate, Value: "2024-01-10"},
		{Type: ActionSetSpecialist, Value: "Dr. House"},
		{Type: ActionSetHealthCheckRating, Value: "1"},
	} {
		_, err := c.Dispatch(a)
		require.NoError(t, err)
	}
}

func TestControllerSubmitSuccess(t *testing.T) {
	creator := &MockEntryCreator{}
	clock := &fakeClock{}
	var appended []entity.Entry
	c := newTestController(creator, &appended, clock)

	fillHealthCheck(t, c)
	entry, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, creator.Drafts, 1)
	assert.Equal(t, &entity.HealthCheckDraft{
		NewBaseEntry:      entity.NewBaseEntry{Description: "Annual checkup", Date: "2024-01-10", Specialist: "Dr. House"},
		HealthCheckRating: 1,
	}, creator.Drafts[0])

	require.Len(t, appended, 1)
	assert.Same(t, entry, appended[0])
	assert.Equal(t, "new-id", entry.Base().ID)

	s := c.State()
	assert.Equal(t, PhaseNotifying, s.Phase)
	require.NotNil(t, s.Notification)
	assert.Equal(t, SeveritySuccess, s.Notification.Severity)
	assert.Equal(t, SuccessMessage, s.Notification.Message)
	assert.Empty(t, s.Description)
	assert.Empty(t, s.Date)
	assert.Empty(t, s.Specialist)
	assert.Empty(t, s.HealthCheckRating)
	assert.Equal(t, entity.EntryTypeHealthCheck, s.Kind)

	require.Len(t, clock.timers, 1)
	assert.Equal(t, DefaultNotificationDelay, clock.timers[0].delay)
	clock.fire(0)

	s = c.State()
	assert.Nil(t, s.Notification)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestControllerSubmitFailurePreservesInput(t *testing.T) {
	creator := &MockEntryCreator{
		CreateEntryFunc: func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
			return nil, &apiError{msg: "Incorrect date: 2024-01-10"}
		},
	}
	clock := &fakeClock{}
	var appended []entity.Entry
	c := newTestController(creator, &appended, clock)

	fillHealthCheck(t, c)
	before := c.State()

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrRejected)
	var ae *apiError
	assert.ErrorAs(t, err, &ae)

	assert.Empty(t, appended)
	s := c.State()
	require.NotNil(t, s.Notification)
	assert.Equal(t, SeverityError, s.Notification.Severity)
	assert.Equal(t, "Incorrect date: 2024-01-10", s.Notification.Message)
	assert.Equal(t, before.Description, s.Description)
	assert.Equal(t, before.Date, s.Date)
	assert.Equal(t, before.Specialist, s.Specialist)
	assert.Equal(t, before.HealthCheckRating, s.HealthCheckRating)

	require.Len(t, clock.timers, 1)
	clock.fire(0)
	assert.Nil(t, c.State().Notification)
	assert.Equal(t, "Annual checkup", c.State().Description)
}

func TestControllerPlainErrorMessage(t *testing.T) {
	creator := &MockEntryCreator{
		CreateEntryFunc: func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
			return nil, errors.New("connection refused")
		},
	}
	var appended []entity.Entry
	c := newTestController(creator, &appended, &fakeClock{})
	fillHealthCheck(t, c)

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "connection refused", c.State().Notification.Message)
}

func TestControllerStoredButUnreadableClearsForm(t *testing.T) {
	creator := &MockEntryCreator{
		CreateEntryFunc: func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
			return nil, fmt.Errorf("%w: unknown entry type", ErrEntryUnreadable)
		},
	}
	var appended []entity.Entry
	c := newTestController(creator, &appended, &fakeClock{})
	fillHealthCheck(t, c)

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrEntryUnreadable)
	assert.NotErrorIs(t, err, ErrRejected)

	assert.Empty(t, appended)
	s := c.State()
	require.NotNil(t, s.Notification)
	assert.Equal(t, UnreadableMessage, s.Notification.Message)
	assert.Empty(t, s.Description)
	assert.Empty(t, s.HealthCheckRating)
}

func TestControllerIncompleteFormMakesNoCall(t *testing.T) {
	creator := &MockEntryCreator{}
	var appended []entity.Entry
	c := newTestController(creator, &appended, &fakeClock{})

	_, err := c.Dispatch(Action{Type: ActionSelectKind, Value: string(entity.EntryTypeHospital)})
	require.NoError(t, err)
	_, err = c.Dispatch(Action{Type: ActionSetDescription, Value: "Fracture"})
	require.NoError(t, err)

	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Empty(t, creator.Drafts)
	assert.Equal(t, PhaseEditing, c.State().Phase)
}

func TestControllerVariantSwitchIsolation(t *testing.T) {
	creator := &MockEntryCreator{}
	var appended []entity.Entry
	c := newTestController(creator, &appended, &fakeClock{})

	fillHealthCheck(t, c)
	for _, a := range []Action{
		{Type: ActionSelectKind, Value: string(entity.EntryTypeHospital)},
		{Type: ActionSetDischargeDate, Value: "2024-01-15"},
		{Type: ActionSetDischargeCriteria, Value: "Thumb has healed"},
	} {
		_, err := c.Dispatch(a)
		require.NoError(t, err)
	}

	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, creator.Drafts, 1)
	hosp, ok := creator.Drafts[0].(*entity.HospitalDraft)
	require.True(t, ok)
	assert.Equal(t, entity.Discharge{Date: "2024-01-15", Criteria: "Thumb has healed"}, hosp.Discharge)

	s := c.State()
	assert.Equal(t, entity.Discharge{}, s.Discharge, "submitted variant is cleared")
	assert.Equal(t, "1", s.HealthCheckRating, "other variants are untouched")
}

func TestControllerRejectsConcurrentSubmit(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	creator := &MockEntryCreator{
		CreateEntryFunc: func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
			close(started)
			<-release
			return entity.EntryFromDraft("e-9", draft), nil
		},
	}
	var appended []entity.Entry
	c := newTestController(creator, &appended, &fakeClock{})
	fillHealthCheck(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-started

	assert.Equal(t, PhaseSubmitting, c.State().Phase)
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	_, err = c.Dispatch(Action{Type: ActionSetSpecialist, Value: "Dr. Quinn"})
	assert.NoError(t, err, "input stays responsive during submission")

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, appended, 1)
}

func TestControllerCloseDiscardsResponse(t *testing.T) {
	var c *Controller
	creator := &MockEntryCreator{
		CreateEntryFunc: func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
			c.Close()
			return entity.EntryFromDraft("late", draft), nil
		},
	}
	clock := &fakeClock{}
	var appended []entity.Entry
	c = newTestController(creator, &appended, clock)
	fillHealthCheck(t, c)

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Empty(t, appended)
	assert.Empty(t, clock.timers)

	_, err = c.Dispatch(Action{Type: ActionSetDate, Value: "2024-01-01"})
	assert.ErrorIs(t, err, ErrClosed)
	assert.True(t, c.Closed())
}

func TestControllerStaleTimerDoesNotClearNewerNotification(t *testing.T) {
	fail := true
	creator := &MockEntryCreator{
		CreateEntryFunc: func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
			if fail {
				return nil, &apiError{msg: "Malformatted specialist"}
			}
			return entity.EntryFromDraft("ok", draft), nil
		},
	}
	clock := &fakeClock{}
	var appended []entity.Entry
	c := newTestController(creator, &appended, clock)
	fillHealthCheck(t, c)

	_, err := c.Submit(context.Background())
	require.Error(t, err)

	fail = false
	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, clock.timers, 2)
	assert.True(t, clock.timers[0].stopped)

	clock.fire(0)
	s := c.State()
	require.NotNil(t, s.Notification, "first timer must not clear the second notification")
	assert.Equal(t, SeveritySuccess, s.Notification.Severity)

	clock.fire(1)
	assert.Nil(t, c.State().Notification)
}

func TestControllerFieldChangeEndsNotification(t *testing.T) {
	creator := &MockEntryCreator{}
	clock := &fakeClock{}
	var appended []entity.Entry
	c := newTestController(creator, &appended, clock)
	fillHealthCheck(t, c)

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, clock.timers, 1)

	s, err := c.Dispatch(Action{Type: ActionSetDescription, Value: "Next"})
	require.NoError(t, err)
	assert.Nil(t, s.Notification)
	assert.Equal(t, PhaseEditing, s.Phase)
	assert.True(t, clock.timers[0].stopped)

	clock.fire(0)
	assert.Equal(t, PhaseEditing, c.State().Phase)
}

func TestControllerObserversAndRestore(t *testing.T) {
	var seen []State
	restored := filledState(entity.EntryTypeOccupationalHealthcare)
	restored.Notification = &Notification{Message: "old", Severity: SeverityError}

	var appended []entity.Entry
	c := newTestController(&MockEntryCreator{}, &appended, &fakeClock{},
		WithState(restored),
		WithObserver(func(s State) { seen = append(seen, s) }),
		WithCodeOptions([]entity.DiagnosisCode{"M51.2"}),
		WithNotificationDelay(time.Second),
	)

	s := c.State()
	assert.Nil(t, s.Notification)
	assert.Equal(t, entity.EntryTypeOccupationalHealthcare, s.Kind)
	assert.Equal(t, []string{"M51.2"}, c.Inputs()[3].Options)

	_, err := c.Cancel()
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Empty(t, seen[0].Description)
}
