package entity

// DiagnosisCode references an entry of the diagnosis catalog
type DiagnosisCode = string

// Diagnosis is one item of the diagnosis catalog
type Diagnosis struct {
	Code  DiagnosisCode `json:"code"`
	Name  string        `json:"name"`
	Latin string        `json:"latin,omitempty"`
}

// DiagnosisCatalog indexes diagnoses by code.
type DiagnosisCatalog map[DiagnosisCode]Diagnosis

func NewDiagnosisCatalog(diagnoses []Diagnosis) DiagnosisCatalog {
	catalog := make(DiagnosisCatalog, len(diagnoses))
	for _, d := range diagnoses {
		catalog[d.Code] = d
	}
	return catalog
}

// Codes returns the catalog codes in the order of diagnoses
func Codes(diagnoses []Diagnosis) []DiagnosisCode {
	codes := make([]DiagnosisCode, 0, len(diagnoses))
	for _, d := range diagnoses {
		codes = append(codes, d.Code)
	}
	return codes
}
