package dto

// Wire format of the patientor backend

type SickLeaveDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type DischargeDTO struct {
	Date     string `json:"date"`
	Criteria string `json:"criteria"`
}

// EntryDTO is the flat JSON shape of every entry variant, discriminated by Type
type EntryDTO struct {
	ID                string        `json:"id,omitempty"`
	Description       string        `json:"description"`
	Date              string        `json:"date"`
	Specialist        string        `json:"specialist"`
	DiagnosisCodes    []string      `json:"diagnosisCodes,omitempty"`
	Type              string        `json:"type"`
	HealthCheckRating *int          `json:"healthCheckRating,omitempty"`
	EmployerName      string        `json:"employerName,omitempty"`
	SickLeave         *SickLeaveDTO `json:"sickLeave,omitempty"`
	Discharge         *DischargeDTO `json:"discharge,omitempty"`
}
