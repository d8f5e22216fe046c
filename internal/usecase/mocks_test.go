package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"patientor/internal/domain/entity"
	"patientor/internal/domain/repository"
	"patientor/internal/form"
	"patientor/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	_ repository.PatientRepository   = (*MockPatientRepository)(nil)
	_ repository.DiagnosisRepository = (*MockDiagnosisRepository)(nil)
	_ repository.FormStateRepository = (*MemoryFormStateRepository)(nil)
	_ repository.AuditLogRepository  = (*MockAuditLogRepository)(nil)
	_ service.AuditService           = (*MockAuditService)(nil)
)

type MockPatientRepository struct {
	FindByIDFunc    func(ctx context.Context, id string) (*entity.Patient, error)
	CreateEntryFunc func(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockPatientRepository) CreateEntry(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, patientID, draft)
	}
	return entity.EntryFromDraft("created", draft), nil
}

type MockDiagnosisRepository struct {
	FindAllFunc func(ctx context.Context) ([]entity.Diagnosis, error)
}

func (m *MockDiagnosisRepository) FindAll(ctx context.Context) ([]entity.Diagnosis, error) {
	return m.FindAllFunc(ctx)
}

type MemoryFormStateRepository struct {
	mu     sync.Mutex
	states map[string]form.State
}

func NewMemoryFormStateRepository() *MemoryFormStateRepository {
	return &MemoryFormStateRepository{states: map[string]form.State{}}
}

func (m *MemoryFormStateRepository) Save(ctx context.Context, key string, state form.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key] = state
	return nil
}

func (m *MemoryFormStateRepository) Load(ctx context.Context, key string) (*form.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

type MockAuditLogRepository struct {
	FindByPatientIDFunc func(ctx context.Context, db *gorm.DB, patientID string) ([]entity.EntryAuditLog, error)
}

func (m *MockAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.EntryAuditLog) error {
	return nil
}

func (m *MockAuditLogRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID string) ([]entity.EntryAuditLog, error) {
	return m.FindByPatientIDFunc(ctx, db, patientID)
}

type MockAuditService struct {
	mu       sync.Mutex
	Created  []entity.Entry
	Rejected []string
}

func (m *MockAuditService) LogEntryCreated(ctx context.Context, sessionID uuid.UUID, patientID string, entry entity.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, entry)
	return nil
}

func (m *MockAuditService) LogEntryRejected(ctx context.Context, sessionID uuid.UUID, patientID string, kind entity.EntryType, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected = append(m.Rejected, reason)
	return nil
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

// noopAfterFunc never fires, so notifications stay until replaced
func noopAfterFunc(time.Duration, func()) form.Timer { return noopTimer{} }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
