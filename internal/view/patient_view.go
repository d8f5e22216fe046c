package view

import (
	"sync/atomic"

	"patientor/internal/domain/entity"
)

// Gender markers
const (
	IconMale        = "♂"
	IconFemale      = "♀"
	IconOtherGender = "⚧"
)

// PatientView holds the patient aggregate shown on one page.
//
// The aggregate is replaced as a whole on every change; readers always get a
// complete snapshot and previously loaded entries are never modified.
type PatientView struct {
	patient atomic.Pointer[entity.Patient]
}

func NewPatientView(p *entity.Patient) *PatientView {
	v := &PatientView{}
	v.patient.Store(p)
	return v
}

// Patient returns the current snapshot. Callers must not modify it.
func (v *PatientView) Patient() *entity.Patient {
	return v.patient.Load()
}

// Refresh swaps in fresh, an aggregate loaded after seen was read from v.
// Entries appended to v since seen that fresh does not carry yet are kept at
// its end, so a reload racing a submit never drops the new entry.
func (v *PatientView) Refresh(seen, fresh *entity.Patient) {
	for {
		current := v.patient.Load()
		next := fresh
		if current != seen && current != nil {
			next = withLaterEntries(fresh, current, seen)
		}
		if v.patient.CompareAndSwap(current, next) {
			return
		}
	}
}

func withLaterEntries(fresh, current, seen *entity.Patient) *entity.Patient {
	from := 0
	if seen != nil {
		from = len(seen.Entries)
	}
	if from > len(current.Entries) {
		from = len(current.Entries)
	}
	known := make(map[string]struct{}, len(fresh.Entries))
	for _, e := range fresh.Entries {
		known[e.Base().ID] = struct{}{}
	}
	p := fresh
	for _, e := range current.Entries[from:] {
		if _, ok := known[e.Base().ID]; !ok {
			p = p.WithEntry(e)
		}
	}
	return p
}

// Append adds e at the end of the entries.
func (v *PatientView) Append(e entity.Entry) {
	for {
		current := v.patient.Load()
		if v.patient.CompareAndSwap(current, current.WithEntry(e)) {
			return
		}
	}
}

// GenderIcon returns the marker for g; anything but male or female is shown as other
func GenderIcon(g entity.Gender) string {
	switch g {
	case entity.GenderMale:
		return IconMale
	case entity.GenderFemale:
		return IconFemale
	default:
		return IconOtherGender
	}
}
