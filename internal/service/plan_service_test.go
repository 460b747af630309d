package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/ledger"
)

func window(minutes int) domain.SleepWindow {
	return domain.SleepWindow{TargetWake: mustClock("07:00"), WindowMinutes: minutes}
}

func rollingAt(se float64) domain.RollingReport {
	return domain.RollingReport{
		From: "2024-01-09", To: "2024-01-15", WindowDays: 7,
		AverageSE: se, NightsCounted: 5,
	}
}

func TestProposeAdjustment(t *testing.T) {
	tests := []struct {
		name          string
		rolling       domain.RollingReport
		current       domain.SleepWindow
		wantMinutes   int
		wantRationale string
		wantChanged   bool
	}{
		{
			name:          "SE above 85 increases by 15",
			rolling:       rollingAt(86),
			current:       window(360),
			wantMinutes:   375,
			wantRationale: domain.RationaleIncrease,
			wantChanged:   true,
		},
		{
			name:          "SE below 80 decreases by 15",
			rolling:       rollingAt(75),
			current:       window(360),
			wantMinutes:   345,
			wantRationale: domain.RationaleDecrease,
			wantChanged:   true,
		},
		{
			name:          "SE below 80 at the 5h floor holds",
			rolling:       rollingAt(75),
			current:       window(300),
			wantMinutes:   300,
			wantRationale: domain.RationaleAtMinimum,
		},
		{
			name:          "SE in the 80-85 band holds",
			rolling:       rollingAt(82),
			current:       window(360),
			wantMinutes:   360,
			wantRationale: domain.RationaleNoChange,
		},
		{
			name:          "boundary 85 exactly holds",
			rolling:       rollingAt(85),
			current:       window(360),
			wantMinutes:   360,
			wantRationale: domain.RationaleNoChange,
		},
		{
			name:          "boundary 80 exactly holds",
			rolling:       rollingAt(80),
			current:       window(360),
			wantMinutes:   360,
			wantRationale: domain.RationaleNoChange,
		},
		{
			name:          "insufficient data holds",
			rolling:       domain.RollingReport{From: "2024-01-09", To: "2024-01-15", WindowDays: 7, Insufficient: true},
			current:       window(360),
			wantMinutes:   360,
			wantRationale: domain.RationaleInsufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProposeAdjustment(tt.rolling, tt.current)

			if got.Proposed.WindowMinutes != tt.wantMinutes {
				t.Errorf("proposed minutes = %d, want %d", got.Proposed.WindowMinutes, tt.wantMinutes)
			}
			if got.Rationale != tt.wantRationale {
				t.Errorf("rationale = %q, want %q", got.Rationale, tt.wantRationale)
			}
			if got.Changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", got.Changed, tt.wantChanged)
			}
			// The engine never touches the target wake time.
			if got.Proposed.TargetWake != tt.current.TargetWake {
				t.Errorf("target wake altered: %s", got.Proposed.TargetWake)
			}
			if want := got.Proposed.PrescribedBedtime(); got.ProposedBedtime != want {
				t.Errorf("proposed bedtime = %s, want %s", got.ProposedBedtime, want)
			}
		})
	}
}

func TestProposeAdjustment_Idempotent(t *testing.T) {
	rolling := rollingAt(86)
	current := window(360)

	first := ProposeAdjustment(rolling, current)
	second := ProposeAdjustment(rolling, current)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ProposeAdjustment not idempotent: %+v vs %+v", first, second)
	}
}

func TestSleepWindow_PrescribedBedtime(t *testing.T) {
	tests := []struct {
		wake    string
		minutes int
		want    string
	}{
		{"07:00", 360, "01:00"},
		{"07:00", 375, "00:45"},
		{"06:00", 420, "23:00"}, // wraps backwards across midnight
		{"07:00", 300, "02:00"},
	}

	for _, tt := range tests {
		w := domain.SleepWindow{TargetWake: mustClock(tt.wake), WindowMinutes: tt.minutes}
		if got := w.PrescribedBedtime().String(); got != tt.want {
			t.Errorf("PrescribedBedtime(%s, %dm) = %s, want %s", tt.wake, tt.minutes, got, tt.want)
		}
	}
}

func newTestPlanService(t *testing.T, diary *MockDiaryRepository, windowRepo *MockWindowRepository) PlanService {
	t.Helper()
	l, err := ledger.New([]domain.WindowHistoryRecord{
		{EffectiveFrom: "2024-01-01", TargetWake: mustClock("07:00"), WindowMinutes: 360, Rationale: domain.RationaleInitial},
	})
	if err != nil {
		t.Fatalf("ledger.New: %v", err)
	}
	metrics := NewMetricsService(diary, l)
	return NewPlanService(l, windowRepo, metrics, 7, func() string { return "2024-01-15" })
}

func TestPlanService_Proposal(t *testing.T) {
	diary := NewMockDiaryRepository()
	ctx := context.Background()
	// 88.9% SE nights: above the increase threshold.
	for _, date := range []string{"2024-01-13", "2024-01-14", "2024-01-15"} {
		if err := diary.Create(ctx, completeEntry(date, "22:00", "22:30", "06:30", "07:00")); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc := newTestPlanService(t, diary, NewMockWindowRepository())
	resp, err := svc.Proposal(ctx)
	if err != nil {
		t.Fatalf("Proposal() error = %v", err)
	}

	if resp.Rolling.NightsCounted != 3 {
		t.Errorf("NightsCounted = %d, want 3", resp.Rolling.NightsCounted)
	}
	if resp.Proposal.Rationale != domain.RationaleIncrease {
		t.Errorf("rationale = %q, want increase", resp.Proposal.Rationale)
	}
	if resp.Proposal.Proposed.WindowMinutes != 375 {
		t.Errorf("proposed minutes = %d, want 375", resp.Proposal.Proposed.WindowMinutes)
	}
}

func TestPlanService_Proposal_NoEntries(t *testing.T) {
	svc := newTestPlanService(t, NewMockDiaryRepository(), NewMockWindowRepository())

	resp, err := svc.Proposal(context.Background())
	if err != nil {
		t.Fatalf("Proposal() error = %v", err)
	}
	if !resp.Rolling.Insufficient {
		t.Error("Insufficient = false, want true")
	}
	if resp.Proposal.Rationale != domain.RationaleInsufficient {
		t.Errorf("rationale = %q, want insufficient data", resp.Proposal.Rationale)
	}
	if resp.Proposal.Changed {
		t.Error("Changed = true, want false")
	}
}

func TestPlanService_Apply(t *testing.T) {
	windowRepo := NewMockWindowRepository()
	svc := newTestPlanService(t, NewMockDiaryRepository(), windowRepo)
	ctx := context.Background()

	rec, err := svc.Apply(ctx, &domain.ApplyWindowRequest{
		EffectiveFrom: "2024-01-15",
		TargetWake:    mustClock("07:00"),
		WindowMinutes: 375,
		Rationale:     domain.RationaleIncrease,
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if rec.WindowMinutes != 375 || rec.Rationale != domain.RationaleIncrease {
		t.Errorf("record = %+v", rec)
	}
	if len(windowRepo.records) != 2 {
		t.Errorf("persisted %d records, want 2", len(windowRepo.records))
	}

	// Appending at or before the latest effective date must fail and
	// leave both the ledger and the store untouched.
	_, err = svc.Apply(ctx, &domain.ApplyWindowRequest{
		EffectiveFrom: "2024-01-15",
		TargetWake:    mustClock("07:00"),
		WindowMinutes: 360,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Apply(duplicate date) error = %v, want ErrValidation", err)
	}
	if len(svc.History(ctx).Data) != 2 {
		t.Error("ledger changed after failed Apply")
	}
}

func TestPlanService_Apply_PersistFailureKeepsMemory(t *testing.T) {
	windowRepo := NewMockWindowRepository()
	windowRepo.replaceErr = errors.New("disk full")
	svc := newTestPlanService(t, NewMockDiaryRepository(), windowRepo)

	_, err := svc.Apply(context.Background(), &domain.ApplyWindowRequest{
		EffectiveFrom: "2024-01-15",
		TargetWake:    mustClock("07:00"),
		WindowMinutes: 375,
	})
	if err == nil {
		t.Fatal("Apply() expected persistence error")
	}
	// The validated in-memory state stays authoritative for the session.
	if got := len(svc.History(context.Background()).Data); got != 2 {
		t.Errorf("ledger has %d records after persist failure, want 2", got)
	}
}

func TestPlanService_EditAndRemove(t *testing.T) {
	windowRepo := NewMockWindowRepository()
	svc := newTestPlanService(t, NewMockDiaryRepository(), windowRepo)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, &domain.ApplyWindowRequest{
		EffectiveFrom: "2024-01-10",
		TargetWake:    mustClock("07:00"),
		WindowMinutes: 375,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	rec, err := svc.Edit(ctx, "2024-01-10", &domain.EditWindowRequest{
		TargetWake:    mustClock("06:30"),
		WindowMinutes: 390,
	})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if rec.WindowMinutes != 390 || rec.TargetWake != mustClock("06:30") {
		t.Errorf("edited record = %+v", rec)
	}

	if err := svc.Remove(ctx, "2024-01-10"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := svc.Remove(ctx, "2024-01-01"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Remove(initial) error = %v, want ErrValidation", err)
	}
}

func TestPlanService_ActiveOn(t *testing.T) {
	svc := newTestPlanService(t, NewMockDiaryRepository(), NewMockWindowRepository())
	ctx := context.Background()

	resp := svc.ActiveOn(ctx, "2024-01-05")
	if resp.Record.EffectiveFrom != "2024-01-01" || resp.GapWarning {
		t.Errorf("ActiveOn(2024-01-05) = %+v", resp)
	}

	resp = svc.ActiveOn(ctx, "2023-12-01")
	if !resp.GapWarning {
		t.Error("GapWarning = false for date before earliest record")
	}
	if resp.Record.EffectiveFrom != "2024-01-01" {
		t.Errorf("fallback record = %s, want earliest", resp.Record.EffectiveFrom)
	}
}
