package ledger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cbti-tools/sleep-diary/internal/domain"
)

func record(date string, wake domain.ClockTime, minutes int, rationale string) domain.WindowHistoryRecord {
	return domain.WindowHistoryRecord{
		EffectiveFrom: date,
		TargetWake:    wake,
		WindowMinutes: minutes,
		Rationale:     rationale,
	}
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New([]domain.WindowHistoryRecord{
		record("2024-01-01", 7*60, 360, domain.RationaleInitial),
		record("2024-01-10", 7*60, 375, domain.RationaleIncrease),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.WindowHistoryRecord
		wantErr error
	}{
		{
			name:    "empty history is corrupt",
			records: nil,
			wantErr: domain.ErrCorruptStore,
		},
		{
			name: "duplicate effective dates are corrupt",
			records: []domain.WindowHistoryRecord{
				record("2024-01-01", 7*60, 360, domain.RationaleInitial),
				record("2024-01-01", 7*60, 375, domain.RationaleManualEdit),
			},
			wantErr: domain.ErrCorruptStore,
		},
		{
			name: "sub-15-minute granularity rejected",
			records: []domain.WindowHistoryRecord{
				record("2024-01-01", 7*60, 370, domain.RationaleInitial),
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "unsorted input is sorted",
			records: []domain.WindowHistoryRecord{
				record("2024-02-01", 7*60, 375, domain.RationaleIncrease),
				record("2024-01-01", 7*60, 360, domain.RationaleInitial),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.records)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			recs := l.Records()
			if recs[0].EffectiveFrom != "2024-01-01" {
				t.Errorf("earliest record = %s, want 2024-01-01", recs[0].EffectiveFrom)
			}
		})
	}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name    string
		record  domain.WindowHistoryRecord
		wantErr bool
	}{
		{
			name:   "strictly later date appends",
			record: record("2024-01-17", 7*60, 360, domain.RationaleDecrease),
		},
		{
			name:    "equal date rejected",
			record:  record("2024-01-10", 7*60, 360, domain.RationaleDecrease),
			wantErr: true,
		},
		{
			name:    "earlier date rejected",
			record:  record("2024-01-05", 7*60, 360, domain.RationaleDecrease),
			wantErr: true,
		},
		{
			name:    "below five hour floor rejected",
			record:  record("2024-01-17", 7*60, 285, domain.RationaleDecrease),
			wantErr: true,
		},
		{
			name:    "not a multiple of 15 rejected",
			record:  record("2024-01-17", 7*60, 361, domain.RationaleDecrease),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			before := l.Records()

			err := l.Append(tt.record)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("Append() error = %v, want ErrValidation", err)
				}
				// Failed mutations must leave the ledger unchanged.
				if !reflect.DeepEqual(l.Records(), before) {
					t.Error("ledger changed after failed Append")
				}
				return
			}
			if err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if l.Len() != 3 {
				t.Errorf("Len() = %d, want 3", l.Len())
			}
		})
	}
}

func TestEdit(t *testing.T) {
	l := newTestLedger(t)

	if err := l.Edit("2024-01-10", domain.SleepWindow{TargetWake: 6*60 + 30, WindowMinutes: 390}); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	recs := l.Records()
	if recs[1].WindowMinutes != 390 || recs[1].TargetWake != 6*60+30 {
		t.Errorf("edited record = %+v, want 06:30/390m", recs[1])
	}
	if recs[1].Rationale != domain.RationaleManualEdit {
		t.Errorf("edited rationale = %q, want %q", recs[1].Rationale, domain.RationaleManualEdit)
	}
	// Edits never change the number or dates of records.
	if l.Len() != 2 || recs[1].EffectiveFrom != "2024-01-10" {
		t.Error("Edit changed record count or dates")
	}

	if err := l.Edit("2024-03-01", domain.SleepWindow{TargetWake: 7 * 60, WindowMinutes: 360}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Edit(nonexistent) error = %v, want ErrValidation", err)
	}
	if err := l.Edit("2024-01-10", domain.SleepWindow{TargetWake: 7 * 60, WindowMinutes: 200}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Edit(invalid window) error = %v, want ErrValidation", err)
	}
}

func TestRemove(t *testing.T) {
	l := newTestLedger(t)

	if err := l.Remove("2024-01-01"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Remove(initial) error = %v, want ErrValidation", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d after failed Remove, want 2", l.Len())
	}

	if err := l.Remove("2024-01-10"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}

	if err := l.Remove("2024-01-10"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Remove(missing) error = %v, want ErrValidation", err)
	}
}

func TestActiveOn(t *testing.T) {
	l := newTestLedger(t)

	tests := []struct {
		name     string
		date     string
		wantFrom string
		wantGap  bool
	}{
		{"between records", "2024-01-05", "2024-01-01", false},
		{"exact match returns that record", "2024-01-10", "2024-01-10", false},
		{"after latest", "2024-06-01", "2024-01-10", false},
		{"before earliest falls back with gap warning", "2023-12-25", "2024-01-01", true},
		{"exact earliest", "2024-01-01", "2024-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, gap := l.ActiveOn(tt.date)
			if rec.EffectiveFrom != tt.wantFrom {
				t.Errorf("ActiveOn(%s) = %s, want %s", tt.date, rec.EffectiveFrom, tt.wantFrom)
			}
			if gap != tt.wantGap {
				t.Errorf("ActiveOn(%s) gap = %v, want %v", tt.date, gap, tt.wantGap)
			}
		})
	}
}
