package usecase

import (
	"context"
	"errors"
	"time"

	"patientor/config"
	"patientor/internal/converter"
	"patientor/internal/delivery/dto"
	"patientor/internal/domain/entity"
	"patientor/internal/domain/repository"
	"patientor/internal/form"
	"patientor/internal/service"
	"patientor/internal/view"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const formStateSaveTimeout = 2 * time.Second

// PatientPageUsecase drives the patient page of one browser session: the
// patient aggregate, its rendered entries and the entry form.
type PatientPageUsecase interface {
	OpenPage(ctx context.Context, sessionID uuid.UUID, patientID string) (*view.Page, error)
	GetPage(ctx context.Context, sessionID uuid.UUID, patientID string) (*view.Page, error)
	Dispatch(ctx context.Context, sessionID uuid.UUID, patientID string, actions []form.Action) (*dto.FormStateResponse, error)
	Cancel(ctx context.Context, sessionID uuid.UUID, patientID string) (*dto.FormStateResponse, error)
	Submit(ctx context.Context, sessionID uuid.UUID, patientID string) (*dto.SubmitEntryResponse, error)
}

type patientPageUsecase struct {
	log           *logrus.Logger
	cfg           config.FormConfig
	validator     form.Validator
	patientRepo   repository.PatientRepository
	diagnosisRepo repository.DiagnosisRepository
	formStateRepo repository.FormStateRepository
	auditService  service.AuditService
	sessions      *service.PageSessionService
	formOptions   []form.Option
}

func NewPatientPageUsecase(
	log *logrus.Logger,
	cfg config.FormConfig,
	validator form.Validator,
	patientRepo repository.PatientRepository,
	diagnosisRepo repository.DiagnosisRepository,
	formStateRepo repository.FormStateRepository,
	auditService service.AuditService,
	sessions *service.PageSessionService,
	formOptions ...form.Option,
) PatientPageUsecase {
	return &patientPageUsecase{
		log:           log,
		cfg:           cfg,
		validator:     validator,
		patientRepo:   patientRepo,
		diagnosisRepo: diagnosisRepo,
		formStateRepo: formStateRepo,
		auditService:  auditService,
		sessions:      sessions,
		formOptions:   formOptions,
	}
}

// OpenPage loads the patient and the diagnosis catalog afresh. An existing
// session keeps its form and gets the new aggregate; otherwise a session is
// created with the form restored from its last snapshot.
func (u *patientPageUsecase) OpenPage(ctx context.Context, sessionID uuid.UUID, patientID string) (*view.Page, error) {
	ps, ok := u.sessions.Get(sessionID, patientID)
	var seen *entity.Patient
	if ok {
		seen = ps.View.Patient()
	}

	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to load patient %s: %+v", patientID, err)
		return nil, err
	}

	diagnoses, err := u.diagnosisRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load diagnosis catalog: %+v", err)
	}
	catalog := entity.NewDiagnosisCatalog(diagnoses)
	codes := entity.Codes(diagnoses)

	if ok {
		ps.View.Refresh(seen, patient)
		ps.SetCatalog(catalog)
		ps.Form.SetCodeOptions(codes)
	} else {
		ps = u.sessions.Put(u.newSession(ctx, sessionID, patient, catalog, codes))
	}

	return u.page(ps), nil
}

func (u *patientPageUsecase) GetPage(ctx context.Context, sessionID uuid.UUID, patientID string) (*view.Page, error) {
	ps, err := u.session(ctx, sessionID, patientID)
	if err != nil {
		return nil, err
	}
	return u.page(ps), nil
}

// Dispatch applies actions in order and stops at the first invalid one
func (u *patientPageUsecase) Dispatch(ctx context.Context, sessionID uuid.UUID, patientID string, actions []form.Action) (*dto.FormStateResponse, error) {
	ps, err := u.session(ctx, sessionID, patientID)
	if err != nil {
		return nil, err
	}

	for _, a := range actions {
		if _, err := ps.Form.Dispatch(a); err != nil {
			resp := formResponse(ps.Form)
			return &resp, err
		}
	}
	resp := formResponse(ps.Form)
	return &resp, nil
}

func (u *patientPageUsecase) Cancel(ctx context.Context, sessionID uuid.UUID, patientID string) (*dto.FormStateResponse, error) {
	ps, err := u.session(ctx, sessionID, patientID)
	if err != nil {
		return nil, err
	}
	if _, err := ps.Form.Cancel(); err != nil {
		return nil, err
	}
	resp := formResponse(ps.Form)
	return &resp, nil
}

// Submit sends the form's draft to the backend. The returned response always
// carries the form state when the session exists, also alongside an error.
func (u *patientPageUsecase) Submit(ctx context.Context, sessionID uuid.UUID, patientID string) (*dto.SubmitEntryResponse, error) {
	ps, err := u.session(ctx, sessionID, patientID)
	if err != nil {
		return nil, err
	}

	kind := ps.Form.State().Kind
	entry, err := ps.Form.Submit(ctx)
	resp := &dto.SubmitEntryResponse{Form: formResponse(ps.Form)}

	switch {
	case err == nil:
		fragment := view.RenderEntry(entry, ps.Catalog())
		resp.Entry = &fragment
		_ = u.auditService.LogEntryCreated(ctx, sessionID, patientID, entry)
	case errors.Is(err, form.ErrRejected):
		reason := ""
		if n := resp.Form.State.Notification; n != nil {
			reason = n.Message
		}
		_ = u.auditService.LogEntryRejected(ctx, sessionID, patientID, kind, reason)
	}
	return resp, err
}

func (u *patientPageUsecase) session(ctx context.Context, sessionID uuid.UUID, patientID string) (*service.PageSession, error) {
	if ps, ok := u.sessions.Get(sessionID, patientID); ok {
		return ps, nil
	}
	if _, err := u.OpenPage(ctx, sessionID, patientID); err != nil {
		return nil, err
	}
	ps, ok := u.sessions.Get(sessionID, patientID)
	if !ok {
		return nil, form.ErrClosed
	}
	return ps, nil
}

func (u *patientPageUsecase) newSession(ctx context.Context, sessionID uuid.UUID, patient *entity.Patient, catalog entity.DiagnosisCatalog, codes []entity.DiagnosisCode) *service.PageSession {
	key := repository.FormStateKey(sessionID, patient.ID)
	pv := view.NewPatientView(patient)

	opts := []form.Option{
		form.WithCodeOptions(codes),
		form.WithNotificationDelay(u.cfg.NotificationDelay),
		form.WithLogger(u.log),
		form.WithObserver(u.saveState(key)),
	}
	saved, err := u.formStateRepo.Load(ctx, key)
	if err != nil {
		u.log.Warnf("Failed to restore form state %s: %+v", key, err)
	} else if saved != nil {
		opts = append(opts, form.WithState(*saved))
	}
	opts = append(opts, u.formOptions...)

	ctrl := form.NewController(patient.ID, u.patientRepo, u.validator, pv.Append, opts...)
	return service.NewPageSession(sessionID, patient.ID, pv, ctrl, catalog)
}

func (u *patientPageUsecase) saveState(key string) func(form.State) {
	return func(s form.State) {
		ctx, cancel := context.WithTimeout(context.Background(), formStateSaveTimeout)
		defer cancel()
		if err := u.formStateRepo.Save(ctx, key, s); err != nil {
			u.log.Warnf("Failed to save form state %s: %+v", key, err)
		}
	}
}

func (u *patientPageUsecase) page(ps *service.PageSession) *view.Page {
	state, inputs := ps.Form.Snapshot()
	return view.NewPage(ps.View.Patient(), ps.Catalog(), state, inputs)
}

func formResponse(c *form.Controller) dto.FormStateResponse {
	state, inputs := c.Snapshot()
	return converter.FormStateToResponse(state, inputs)
}
