package form

import (
	"testing"

	"patientor/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceSetsFields(t *testing.T) {
	s := NewState()
	actions := []Action{
		{Type: ActionSetDescription, Value: "Cough"},
		{Type: ActionSetDate, Value: "2024-01-10"},
		{Type: ActionSetSpecialist, Value: "Dr. House"},
		{Type: ActionSetDiagnosisCodes, Values: []string{"J10.1", "", "J06.9", "J10.1"}},
		{Type: ActionSetHealthCheckRating, Value: "2"},
		{Type: ActionSetEmployerName, Value: "ACME"},
		{Type: ActionSetSickLeaveStart, Value: "2024-01-10"},
		{Type: ActionSetSickLeaveEnd, Value: "2024-01-12"},
		{Type: ActionSetDischargeDate, Value: "2024-01-15"},
		{Type: ActionSetDischargeCriteria, Value: "Recovered"},
	}
	for _, a := range actions {
		var err error
		s, err = Reduce(s, a)
		require.NoError(t, err, a.Type)
	}

	assert.Equal(t, "Cough", s.Description)
	assert.Equal(t, "2024-01-10", s.Date)
	assert.Equal(t, "Dr. House", s.Specialist)
	assert.Equal(t, []entity.DiagnosisCode{"J10.1", "J06.9"}, s.DiagnosisCodes)
	assert.Equal(t, "2", s.HealthCheckRating)
	assert.Equal(t, "ACME", s.EmployerName)
	assert.Equal(t, entity.SickLeave{StartDate: "2024-01-10", EndDate: "2024-01-12"}, s.SickLeave)
	assert.Equal(t, entity.Discharge{Date: "2024-01-15", Criteria: "Recovered"}, s.Discharge)
	assert.Equal(t, PhaseEditing, s.Phase)
}

func TestReduceParsesCommaSeparatedCodes(t *testing.T) {
	s, err := Reduce(NewState(), Action{Type: ActionSetDiagnosisCodes, Value: "M24.2, S03.5"})
	require.NoError(t, err)
	assert.Equal(t, []entity.DiagnosisCode{"M24.2", "S03.5"}, s.DiagnosisCodes)

	s, err = Reduce(s, Action{Type: ActionSetDiagnosisCodes})
	require.NoError(t, err)
	assert.Empty(t, s.DiagnosisCodes)
}

func TestReduceIsPure(t *testing.T) {
	s := NewState()
	s.DiagnosisCodes = []entity.DiagnosisCode{"L20"}

	next, err := Reduce(s, Action{Type: ActionSetDescription, Value: "Rash"})
	require.NoError(t, err)
	next.DiagnosisCodes[0] = "F43.2"

	assert.Equal(t, "", s.Description)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, []entity.DiagnosisCode{"L20"}, s.DiagnosisCodes)
}

func TestReduceSelectKindKeepsFields(t *testing.T) {
	s := NewState()
	s, _ = Reduce(s, Action{Type: ActionSetDescription, Value: "Checkup"})
	s, _ = Reduce(s, Action{Type: ActionSetHealthCheckRating, Value: "1"})

	s, err := Reduce(s, Action{Type: ActionSelectKind, Value: string(entity.EntryTypeOccupationalHealthcare)})
	require.NoError(t, err)

	assert.Equal(t, entity.EntryTypeOccupationalHealthcare, s.Kind)
	assert.Equal(t, "Checkup", s.Description)
	assert.Equal(t, "1", s.HealthCheckRating, "inactive variant fields stay in memory")
}

func TestReduceErrors(t *testing.T) {
	s := NewState()

	next, err := Reduce(s, Action{Type: ActionSelectKind, Value: "Dental"})
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, s, next)

	_, err = Reduce(s, Action{Type: "submit"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestReduceFieldChangeDropsNotification(t *testing.T) {
	s := failed(filledState(entity.EntryTypeHealthCheck), "bad date")
	require.Equal(t, PhaseNotifying, s.Phase)

	s, err := Reduce(s, Action{Type: ActionSetDate, Value: "2024-01-11"})
	require.NoError(t, err)
	assert.Nil(t, s.Notification)
	assert.Equal(t, PhaseEditing, s.Phase)
}

func TestReduceKeepsSubmittingPhase(t *testing.T) {
	s := submitting(filledState(entity.EntryTypeHealthCheck))

	s, err := Reduce(s, Action{Type: ActionSetSpecialist, Value: "Dr. Quinn"})
	require.NoError(t, err)
	assert.Equal(t, PhaseSubmitting, s.Phase)
	assert.Equal(t, "Dr. Quinn", s.Specialist)
}

func TestCancelClearsActiveVariantOnly(t *testing.T) {
	s := filledState(entity.EntryTypeOccupationalHealthcare)
	s.DiagnosisCodes = []entity.DiagnosisCode{"Z74.3"}
	s.EmployerName = "ACME"
	s.SickLeave = entity.SickLeave{StartDate: "2024-01-01", EndDate: "2024-01-02"}
	s.HealthCheckRating = "2"
	s.Discharge = entity.Discharge{Date: "2024-01-03", Criteria: "ok"}

	s, err := Reduce(s, Action{Type: ActionCancel})
	require.NoError(t, err)

	assert.Empty(t, s.Description)
	assert.Empty(t, s.Date)
	assert.Empty(t, s.Specialist)
	assert.Empty(t, s.DiagnosisCodes)
	assert.Empty(t, s.EmployerName)
	assert.True(t, s.SickLeave.Empty())
	assert.Equal(t, "2", s.HealthCheckRating)
	assert.Equal(t, entity.Discharge{Date: "2024-01-03", Criteria: "ok"}, s.Discharge)
	assert.Equal(t, entity.EntryTypeOccupationalHealthcare, s.Kind)
}

func TestButtons(t *testing.T) {
	buttons := Buttons(entity.EntryTypeHospital)
	require.Len(t, buttons, 3)
	for _, b := range buttons {
		if b.Kind == entity.EntryTypeHospital {
			assert.Equal(t, ButtonContained, b.Style)
		} else {
			assert.Equal(t, ButtonOutlined, b.Style)
		}
	}
}

func TestRestored(t *testing.T) {
	s := failed(filledState(entity.EntryTypeHealthCheck), "oops")
	s.Kind = "bogus"

	r := s.Restored()
	assert.Nil(t, r.Notification)
	assert.Equal(t, PhaseIdle, r.Phase)
	assert.Equal(t, entity.EntryTypeHealthCheck, r.Kind)
	assert.Equal(t, s.Description, r.Description)
}
