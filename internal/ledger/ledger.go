// Package ledger maintains the effective-dated sequence of sleep
// window prescriptions. The ledger exclusively owns the ordered record
// set; every mutation is validated against a scratch copy before it is
// committed, so a failed call leaves the ledger unchanged.
package ledger

import (
	"fmt"
	"sort"

	"github.com/cbti-tools/sleep-diary/internal/domain"
)

// Ledger is the in-memory window history. Records are strictly ordered
// by effective_from, no two records share a date, and the earliest
// record (the initial plan) is never removed.
type Ledger struct {
	records []domain.WindowHistoryRecord
}

// New builds a ledger from persisted records, sorting and validating
// them. An empty record set fails with ErrCorruptStore: the store must
// always contain the initial plan.
func New(records []domain.WindowHistoryRecord) (*Ledger, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: window history is empty", domain.ErrCorruptStore)
	}

	sorted := make([]domain.WindowHistoryRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom < sorted[j].EffectiveFrom
	})

	for i, r := range sorted {
		if err := validateRecord(r); err != nil {
			return nil, err
		}
		if i > 0 && sorted[i-1].EffectiveFrom == r.EffectiveFrom {
			return nil, fmt.Errorf("%w: duplicate effective date %s", domain.ErrCorruptStore, r.EffectiveFrom)
		}
	}

	return &Ledger{records: sorted}, nil
}

func validateRecord(r domain.WindowHistoryRecord) error {
	if !domain.ValidDate(r.EffectiveFrom) {
		return fmt.Errorf("%w: invalid effective date %q", domain.ErrValidation, r.EffectiveFrom)
	}
	return r.Window().Validate()
}

// Records returns a copy of the ordered record sequence.
func (l *Ledger) Records() []domain.WindowHistoryRecord {
	out := make([]domain.WindowHistoryRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Append adds a record whose effective date must be strictly greater
// than every existing record's.
func (l *Ledger) Append(record domain.WindowHistoryRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	last := l.records[len(l.records)-1]
	if record.EffectiveFrom <= last.EffectiveFrom {
		return fmt.Errorf("%w: effective date %s is not after the latest record (%s)",
			domain.ErrValidation, record.EffectiveFrom, last.EffectiveFrom)
	}
	l.records = append(l.records, record)
	return nil
}

// Edit replaces the window prescribed at an existing effective date.
// Edits never change the number or dates of records, only their window
// values; re-dating a record is a remove+append.
func (l *Ledger) Edit(effectiveFrom string, window domain.SleepWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	for i, r := range l.records {
		if r.EffectiveFrom == effectiveFrom {
			l.records[i].TargetWake = window.TargetWake
			l.records[i].WindowMinutes = window.WindowMinutes
			l.records[i].Rationale = domain.RationaleManualEdit
			return nil
		}
	}
	return fmt.Errorf("%w: no window record at %s", domain.ErrValidation, effectiveFrom)
}

// Remove deletes the record at the given effective date. Removing the
// earliest record is rejected: the ledger must never become empty or
// lose its initial anchor.
func (l *Ledger) Remove(effectiveFrom string) error {
	for i, r := range l.records {
		if r.EffectiveFrom != effectiveFrom {
			continue
		}
		if i == 0 {
			return fmt.Errorf("%w: cannot remove the initial plan record", domain.ErrValidation)
		}
		l.records = append(l.records[:i], l.records[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: no window record at %s", domain.ErrValidation, effectiveFrom)
}

// ActiveOn returns the record with the greatest effective_from <= date.
// For dates before the earliest record the initial plan is returned
// with gap=true; the lookup itself never fails.
func (l *Ledger) ActiveOn(date string) (domain.WindowHistoryRecord, bool) {
	active := l.records[0]
	found := false
	for _, r := range l.records {
		if r.EffectiveFrom <= date {
			active = r
			found = true
		} else {
			break
		}
	}
	return active, !found
}
