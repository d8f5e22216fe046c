package view

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"patientor/internal/domain/entity"
	"patientor/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dentalEntry struct{ entity.HealthCheckEntry }

var catalog = entity.NewDiagnosisCatalog([]entity.Diagnosis{
	{Code: "S62.5", Name: "Fracture of thumb"},
})

func base(id string) entity.BaseEntry {
	return entity.BaseEntry{
		ID:          id,
		Description: "Described " + id,
		Date:        "2024-01-10",
		Specialist:  "Dr. House",
	}
}

func TestRenderHealthCheck(t *testing.T) {
	symbols := map[string]bool{}
	for _, r := range entity.HealthCheckRatings {
		f := RenderEntry(&entity.HealthCheckEntry{BaseEntry: base("hc"), HealthCheckRating: r}, catalog)

		require.NotNil(t, f.Rating)
		assert.Equal(t, r, f.Rating.Rating)
		assert.Equal(t, IconHealthCheck, f.Icon)
		assert.Equal(t, "2024-01-10", f.Date)
		assert.Equal(t, "Dr. House", f.Specialist)
		assert.Equal(t, "Described hc", f.Description)
		symbols[f.Rating.Symbol] = true
	}
	assert.Len(t, symbols, 4, "each rating needs its own marker")
}

func TestRenderOccupationalHealthcare(t *testing.T) {
	e := &entity.OccupationalHealthcareEntry{BaseEntry: base("oc"), EmployerName: "FBI"}
	f := RenderEntry(e, catalog)

	assert.Equal(t, entity.EntryTypeOccupationalHealthcare, f.Type)
	assert.Equal(t, IconOccupationalHealthcare, f.Icon)
	assert.Equal(t, "FBI", f.EmployerName)
	assert.Equal(t, "Described oc", f.Description)
	assert.Nil(t, f.SickLeave)
	assert.Nil(t, f.Rating)

	e.SickLeave = &entity.SickLeave{StartDate: "2024-01-10", EndDate: "2024-01-11"}
	f = RenderEntry(e, catalog)
	require.NotNil(t, f.SickLeave)
	assert.NotSame(t, e.SickLeave, f.SickLeave)
}

func TestRenderHospital(t *testing.T) {
	e := &entity.HospitalEntry{BaseEntry: base("h"), Discharge: entity.Discharge{Date: "2024-01-16", Criteria: "Thumb has healed."}}
	e.DiagnosisCodes = []entity.DiagnosisCode{"S62.5", "Z99.9"}

	f := RenderEntry(e, catalog)

	assert.Equal(t, IconHospital, f.Icon)
	assert.Equal(t, "2024-01-16", f.DischargeDate)
	assert.Equal(t, "Thumb has healed.", f.DischargeCriteria)
	assert.Equal(t, []DiagnosisRef{{Code: "S62.5", Name: "Fracture of thumb"}, {Code: "Z99.9"}}, f.DiagnosisCodes)
}

func TestRenderPanicsOnForeignVariant(t *testing.T) {
	defer func() {
		err, ok := recover().(*entity.UnhandledVariantError)
		require.True(t, ok)
		assert.Contains(t, err.Error(), "Described x")
	}()
	RenderEntry(&dentalEntry{entity.HealthCheckEntry{BaseEntry: base("x")}}, catalog)
}

func TestRatingPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { Rating(entity.HealthCheckRating(9)) })
}

func TestPatientViewAppend(t *testing.T) {
	first := &entity.HealthCheckEntry{BaseEntry: base("1")}
	p := &entity.Patient{ID: "p", Name: "John", Entries: []entity.Entry{first}}
	v := NewPatientView(p)

	added := &entity.HospitalEntry{BaseEntry: base("2")}
	v.Append(added)

	got := v.Patient()
	require.Len(t, got.Entries, 2)
	assert.Same(t, first, got.Entries[0].(*entity.HealthCheckEntry))
	assert.Same(t, added, got.Entries[1].(*entity.HospitalEntry))
	assert.Len(t, p.Entries, 1, "previous snapshot is untouched")
}

func TestPatientViewConcurrentAppend(t *testing.T) {
	v := NewPatientView(&entity.Patient{ID: "p"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Append(&entity.HealthCheckEntry{})
		}()
	}
	wg.Wait()

	assert.Len(t, v.Patient().Entries, 50)
}

func TestPatientViewRefreshKeepsEntriesAppendedDuringLoad(t *testing.T) {
	seen := &entity.Patient{ID: "p", Entries: []entity.Entry{&entity.HealthCheckEntry{BaseEntry: base("1")}}}
	v := NewPatientView(seen)

	// loaded before the submit below landed on the backend
	fresh := &entity.Patient{ID: "p", Name: "Renamed", Entries: []entity.Entry{&entity.HealthCheckEntry{BaseEntry: base("1")}}}
	added := &entity.HospitalEntry{BaseEntry: base("2")}
	v.Append(added)

	v.Refresh(seen, fresh)

	got := v.Patient()
	assert.Equal(t, "Renamed", got.Name)
	require.Len(t, got.Entries, 2)
	assert.Same(t, added, got.Entries[1].(*entity.HospitalEntry))
	assert.Len(t, fresh.Entries, 1)
}

func TestPatientViewRefreshDoesNotDuplicateLoadedEntries(t *testing.T) {
	seen := &entity.Patient{ID: "p"}
	v := NewPatientView(seen)
	v.Append(&entity.HospitalEntry{BaseEntry: base("2")})

	fresh := &entity.Patient{ID: "p", Entries: []entity.Entry{&entity.HospitalEntry{BaseEntry: base("2")}}}
	v.Refresh(seen, fresh)

	assert.Same(t, fresh, v.Patient())
}

func TestPatientViewRefreshWithoutConcurrentAppend(t *testing.T) {
	seen := &entity.Patient{ID: "p"}
	v := NewPatientView(seen)
	fresh := &entity.Patient{ID: "p", Name: "New"}

	v.Refresh(seen, fresh)
	assert.Same(t, fresh, v.Patient())
}

func TestGenderIcon(t *testing.T) {
	assert.Equal(t, IconMale, GenderIcon(entity.GenderMale))
	assert.Equal(t, IconFemale, GenderIcon(entity.GenderFemale))
	assert.Equal(t, IconOtherGender, GenderIcon(entity.GenderOther))
	assert.Equal(t, IconOtherGender, GenderIcon("unknown"))
}

func TestPatientPageTemplate(t *testing.T) {
	p := &entity.Patient{
		ID: "d2773336", Name: "John McClane", Gender: entity.GenderMale, SSN: "090786-122X", Occupation: "New york city cop",
		Entries: []entity.Entry{
			&entity.HospitalEntry{BaseEntry: base("h1"), Discharge: entity.Discharge{Date: "2024-01-16", Criteria: "Healed"}},
			&entity.OccupationalHealthcareEntry{BaseEntry: base("o1"), EmployerName: "NYPD"},
		},
	}
	state := form.NewState()
	state.Kind = entity.EntryTypeOccupationalHealthcare
	state.EmployerName = "NYPD <script>"
	state.Notification = &form.Notification{Message: "New entry is successfully created!", Severity: form.SeveritySuccess}

	page := NewPage(p, catalog, state, form.Inputs(state, []entity.DiagnosisCode{"S62.5"}))

	var buf bytes.Buffer
	require.NoError(t, PatientPageTemplate.Render(&buf, page))
	html := buf.String()

	assert.Contains(t, html, "John McClane ♂")
	assert.Contains(t, html, "New entry is successfully created!")
	assert.Contains(t, html, `name="employerName"`)
	assert.NotContains(t, html, `name="dischargeDate"`)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "2024-01-16 - Healed")
	assert.Contains(t, html, "<em>NYPD</em>")
	assert.Contains(t, html, `class="btn-contained"`)
	assert.Contains(t, html, "diagnose by Dr. House")
}

func TestPatientPageTemplateAlwaysShowsDischarge(t *testing.T) {
	p := &entity.Patient{
		ID: "p", Name: "Holly Gennero", Gender: entity.GenderFemale,
		Entries: []entity.Entry{
			&entity.HospitalEntry{BaseEntry: base("h1")},
			&entity.HealthCheckEntry{BaseEntry: base("c1")},
		},
	}
	state := form.NewState()
	page := NewPage(p, catalog, state, form.Inputs(state, nil))

	var buf bytes.Buffer
	require.NoError(t, PatientPageTemplate.Render(&buf, page))
	html := buf.String()

	assert.Equal(t, 1, strings.Count(html, IconDischarge))
	assert.Contains(t, html, IconDischarge+"  - </p>")
}
