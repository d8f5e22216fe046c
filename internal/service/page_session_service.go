package service

import (
	"sync"
	"sync/atomic"
	"time"

	"patientor/internal/domain/entity"
	"patientor/internal/form"
	"patientor/internal/view"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PageSession is one browser session looking at one patient: the patient
// aggregate, the entry form bound to it and the diagnosis catalog used to
// render both.
type PageSession struct {
	SessionID uuid.UUID
	PatientID string
	View      *view.PatientView
	Form      *form.Controller

	catalog  atomic.Pointer[entity.DiagnosisCatalog]
	lastUsed atomic.Int64
}

func NewPageSession(sessionID uuid.UUID, patientID string, v *view.PatientView, c *form.Controller, catalog entity.DiagnosisCatalog) *PageSession {
	s := &PageSession{SessionID: sessionID, PatientID: patientID, View: v, Form: c}
	s.SetCatalog(catalog)
	return s
}

func (s *PageSession) Catalog() entity.DiagnosisCatalog {
	if c := s.catalog.Load(); c != nil {
		return *c
	}
	return nil
}

func (s *PageSession) SetCatalog(c entity.DiagnosisCatalog) {
	s.catalog.Store(&c)
}

type pageSessionKey struct {
	sessionID uuid.UUID
	patientID string
}

// PageSessionService keeps the live page sessions.
// Sessions unused for longer than the TTL are evicted by a background loop
// and their forms are closed, which discards any response still in flight.
// Call Stop() during graceful shutdown.
type PageSessionService struct {
	log      *logrus.Logger
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time

	sessions sync.Map // map[pageSessionKey]*PageSession

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewPageSessionService(log *logrus.Logger, ttl, interval time.Duration) *PageSessionService {
	svc := newPageSessionService(log, ttl, time.Now)
	svc.interval = interval

	svc.wg.Add(1)
	go svc.cleanupLoop()

	return svc
}

func newPageSessionService(log *logrus.Logger, ttl time.Duration, now func() time.Time) *PageSessionService {
	return &PageSessionService{
		log:      log,
		ttl:      ttl,
		now:      now,
		stopChan: make(chan struct{}),
	}
}

// Get returns the session of sessionID for patientID and marks it used
func (s *PageSessionService) Get(sessionID uuid.UUID, patientID string) (*PageSession, bool) {
	v, ok := s.sessions.Load(pageSessionKey{sessionID, patientID})
	if !ok {
		return nil, false
	}
	ps := v.(*PageSession)
	ps.lastUsed.Store(s.now().Unix())
	return ps, true
}

// Put registers ps unless a session already exists for the same key, in
// which case ps's form is closed and the existing session is returned.
func (s *PageSessionService) Put(ps *PageSession) *PageSession {
	ps.lastUsed.Store(s.now().Unix())
	actual, loaded := s.sessions.LoadOrStore(pageSessionKey{ps.SessionID, ps.PatientID}, ps)
	if loaded {
		ps.Form.Close()
		existing := actual.(*PageSession)
		existing.lastUsed.Store(s.now().Unix())
		return existing
	}
	return ps
}

// Remove closes and forgets the session
func (s *PageSessionService) Remove(sessionID uuid.UUID, patientID string) {
	if v, ok := s.sessions.LoadAndDelete(pageSessionKey{sessionID, patientID}); ok {
		v.(*PageSession).Form.Close()
	}
}

// Len returns the number of live sessions
func (s *PageSessionService) Len() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stop ends the cleanup loop and closes every session.
// Safe to call multiple times.
func (s *PageSessionService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.sessions.Range(func(key, value any) bool {
			s.sessions.Delete(key)
			value.(*PageSession).Form.Close()
			return true
		})
		s.log.Info("PageSessionService stopped")
	}
}

func (s *PageSessionService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Page session cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *PageSessionService) evictIdle() {
	cutoff := s.now().Add(-s.ttl).Unix()
	var evicted int

	s.sessions.Range(func(key, value any) bool {
		ps := value.(*PageSession)
		if ps.lastUsed.Load() < cutoff {
			if s.sessions.CompareAndDelete(key, ps) {
				ps.Form.Close()
				evicted++
			}
		}
		return true
	})

	if evicted > 0 {
		s.log.Debugf("Evicted %d idle page sessions", evicted)
	}
}
