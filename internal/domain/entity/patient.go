package entity

// Gender of a patient
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient is the aggregate shown on the patient page.
// Entries are kept in insertion order, which is also the display order.
type Patient struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dateOfBirth,omitempty"`
	Gender      Gender  `json:"gender"`
	SSN         string  `json:"ssn"`
	Occupation  string  `json:"occupation"`
	Entries     []Entry `json:"entries"`
}

// WithEntry returns a copy of p with e appended to its entries.
// p and its entries slice are left untouched.
func (p *Patient) WithEntry(e Entry) *Patient {
	next := *p
	next.Entries = make([]Entry, len(p.Entries), len(p.Entries)+1)
	copy(next.Entries, p.Entries)
	next.Entries = append(next.Entries, e)
	return &next
}
