package entity

// NewBaseEntry holds the shared fields of an entry that has not been stored yet
type NewBaseEntry struct {
	Description    string          `json:"description"`
	Date           string          `json:"date"`
	Specialist     string          `json:"specialist"`
	DiagnosisCodes []DiagnosisCode `json:"diagnosisCodes,omitempty"`
}

// EntryDraft is an Entry without identifier, built by the entry form and turned
// into an Entry by the storage collaborator.
type EntryDraft interface {
	Type() EntryType
	NewBase() NewBaseEntry
	isEntryDraft()
}

type HealthCheckDraft struct {
	NewBaseEntry
	HealthCheckRating HealthCheckRating `json:"healthCheckRating"`
}

type OccupationalHealthcareDraft struct {
	NewBaseEntry
	EmployerName string     `json:"employerName"`
	SickLeave    *SickLeave `json:"sickLeave,omitempty"`
}

type HospitalDraft struct {
	NewBaseEntry
	Discharge Discharge `json:"discharge"`
}

func (d *HealthCheckDraft) Type() EntryType            { return EntryTypeHealthCheck }
func (d *OccupationalHealthcareDraft) Type() EntryType { return EntryTypeOccupationalHealthcare }
func (d *HospitalDraft) Type() EntryType               { return EntryTypeHospital }

func (d *HealthCheckDraft) NewBase() NewBaseEntry            { return d.NewBaseEntry }
func (d *OccupationalHealthcareDraft) NewBase() NewBaseEntry { return d.NewBaseEntry }
func (d *HospitalDraft) NewBase() NewBaseEntry               { return d.NewBaseEntry }

func (*HealthCheckDraft) isEntryDraft()            {}
func (*OccupationalHealthcareDraft) isEntryDraft() {}
func (*HospitalDraft) isEntryDraft()               {}

// EntryFromDraft assigns id to draft and returns the stored entry
func EntryFromDraft(id string, draft EntryDraft) Entry {
	base := BaseEntry{ID: id}
	nb := draft.NewBase()
	base.Description = nb.Description
	base.Date = nb.Date
	base.Specialist = nb.Specialist
	if len(nb.DiagnosisCodes) > 0 {
		base.DiagnosisCodes = append([]DiagnosisCode(nil), nb.DiagnosisCodes...)
	}

	switch d := draft.(type) {
	case *HealthCheckDraft:
		return &HealthCheckEntry{BaseEntry: base, HealthCheckRating: d.HealthCheckRating}
	case *OccupationalHealthcareDraft:
		e := &OccupationalHealthcareEntry{BaseEntry: base, EmployerName: d.EmployerName}
		if d.SickLeave != nil {
			sl := *d.SickLeave
			e.SickLeave = &sl
		}
		return e
	case *HospitalDraft:
		return &HospitalEntry{BaseEntry: base, Discharge: d.Discharge}
	default:
		UnhandledVariant(draft)
		return nil
	}
}
