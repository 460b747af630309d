package service

import (
	"context"
	"math"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/repository"
	"github.com/cbti-tools/sleep-diary/internal/sleepday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultRollingWindowDays is the trailing window for the SE
	// average.
	DefaultRollingWindowDays = 7

	// Nap-frequency thresholds: days with naps in the window.
	napOccasionalDays = 1
	napRegularDays    = 2
	napFrequentDays   = 4

	// AdherenceToleranceMinutes is how far bedtime and rise may drift
	// from the prescription and still count as adherent.
	AdherenceToleranceMinutes = 30
)

// Adherence-rate grade boundaries, in percent of checked nights.
const (
	adherenceHighRate = 70.0
	adherenceLowRate  = 30.0
)

// WindowResolver answers which window prescription was active on a
// date. *ledger.Ledger satisfies it.
type WindowResolver interface {
	ActiveOn(date string) (domain.WindowHistoryRecord, bool)
}

// MetricsService derives per-night and rolling sleep metrics from
// diary entries. All computation is pure and idempotent; re-running on
// unchanged inputs yields identical output.
type MetricsService interface {
	// Nights returns per-night metrics for from <= log_date <= to in
	// chronological order, incomplete nights included and flagged.
	Nights(ctx context.Context, from, to string) ([]domain.NightMetrics, error)
	// Rolling computes the trailing-window aggregate for the window
	// ending at (and including) today.
	Rolling(ctx context.Context, today string, windowDays int) (*domain.RollingReport, error)
}

type metricsService struct {
	repo    repository.DiaryRepository
	windows WindowResolver
}

func NewMetricsService(repo repository.DiaryRepository, windows WindowResolver) MetricsService {
	return &metricsService{repo: repo, windows: windows}
}

func (s *metricsService) Nights(ctx context.Context, from, to string) ([]domain.NightMetrics, error) {
	entries, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	nights := make([]domain.NightMetrics, len(entries))
	for i := range entries {
		nights[i] = ComputeNight(&entries[i])
	}
	return nights, nil
}

func (s *metricsService) Rolling(ctx context.Context, today string, windowDays int) (*domain.RollingReport, error) {
	tracer := otel.Tracer("sleep-diary-api/metrics")
	ctx, span := tracer.Start(ctx, "MetricsService.Rolling",
		trace.WithAttributes(
			attribute.String("window.to", today),
			attribute.Int("window.days", windowDays),
		),
	)
	defer span.End()

	if windowDays <= 0 {
		windowDays = DefaultRollingWindowDays
	}
	from := domain.AddDays(today, -(windowDays - 1))

	entries, err := s.repo.ListRange(ctx, from, today)
	if err != nil {
		return nil, err
	}

	nights := make([]domain.NightMetrics, len(entries))
	for i := range entries {
		nights[i] = ComputeNight(&entries[i])
	}

	report := Aggregate(nights, from, today, windowDays)
	report.Adherence = ComputeAdherence(entries, s.windows)
	span.SetAttributes(
		attribute.Int("rolling.nights_counted", report.NightsCounted),
		attribute.Bool("rolling.insufficient", report.Insufficient),
	)
	return &report, nil
}

// ComputeNight derives TIB, WASO, TST and SE for one entry. A night
// missing any of bedtime, sleep_onset, final_wake or rise_time, or
// with non-positive TIB, is flagged incomplete and carries no SE.
func ComputeNight(entry *domain.DiaryEntry) domain.NightMetrics {
	m := domain.NightMetrics{LogDate: entry.LogDate}

	for _, nap := range entry.Naps {
		m.NapMinutes += int(nap.End - nap.Start)
	}

	if entry.Bedtime == nil || entry.SleepOnset == nil || entry.FinalWake == nil || entry.RiseTime == nil {
		m.Incomplete = true
		return m
	}

	m.TIBMinutes = sleepday.Minutes(*entry.Bedtime, *entry.RiseTime)
	if m.TIBMinutes <= 0 {
		m.Incomplete = true
		return m
	}

	for _, awak := range entry.Awakenings {
		m.WASOMinutes += sleepday.ClipMinutes(awak, *entry.SleepOnset, *entry.FinalWake)
	}

	m.TSTMinutes = sleepday.Minutes(*entry.SleepOnset, *entry.FinalWake) - m.WASOMinutes
	if m.TSTMinutes < 0 {
		m.TSTMinutes = 0
	}

	se := 100 * float64(m.TSTMinutes) / float64(m.TIBMinutes)
	m.SE = math.Round(math.Max(0, math.Min(100, se))*10) / 10
	return m
}

// Aggregate computes the rolling average over complete nights only.
// Incomplete nights are skipped, never treated as SE=0; zero complete
// nights yields the insufficient-data sentinel, not a numeric average.
func Aggregate(nights []domain.NightMetrics, from, to string, windowDays int) domain.RollingReport {
	report := domain.RollingReport{
		From:       from,
		To:         to,
		WindowDays: windowDays,
		Naps:       assessNaps(nights),
	}

	sum := 0.0
	for _, n := range nights {
		if n.Incomplete {
			continue
		}
		sum += n.SE
		report.NightsCounted++
	}

	if report.NightsCounted == 0 {
		report.Insufficient = true
		return report
	}

	report.AverageSE = math.Round(sum/float64(report.NightsCounted)*10) / 10
	return report
}

// assessNaps summarizes daytime napping over all logged days in the
// window, incomplete nights included (a nap is a nap even when the
// night's timestamps are missing).
func assessNaps(nights []domain.NightMetrics) domain.NapAssessment {
	a := domain.NapAssessment{Category: domain.NapNone}
	for _, n := range nights {
		if n.NapMinutes > 0 {
			a.DaysWithNaps++
			a.TotalNapMinutes += n.NapMinutes
		}
	}

	if len(nights) > 0 {
		a.AvgNapMinutesPerDay = math.Round(float64(a.TotalNapMinutes)/float64(len(nights))*10) / 10
	}

	switch {
	case a.DaysWithNaps >= napFrequentDays:
		a.Category = domain.NapFrequent
	case a.DaysWithNaps >= napRegularDays:
		a.Category = domain.NapRegular
	case a.DaysWithNaps >= napOccasionalDays:
		a.Category = domain.NapOccasional
	}
	return a
}

// ComputeAdherence checks each night's bedtime and rise time against
// the window active on its log date. A night is adherent when both lie
// within the tolerance of the prescription; nights missing either
// timestamp are skipped, never counted as misses. This measures only
// whether the user kept the prescribed times, not how long they slept.
func ComputeAdherence(entries []domain.DiaryEntry, windows WindowResolver) domain.AdherenceAssessment {
	a := domain.AdherenceAssessment{Category: domain.AdherenceUnknown}

	for i := range entries {
		entry := &entries[i]
		if entry.Bedtime == nil || entry.RiseTime == nil {
			continue
		}
		a.NightsChecked++

		record, _ := windows.ActiveOn(entry.LogDate)
		window := record.Window()

		bedDrift := sleepday.Minutes(window.PrescribedBedtime(), *entry.Bedtime)
		wakeDrift := sleepday.Minutes(window.TargetWake, *entry.RiseTime)
		if absMinutes(bedDrift) <= AdherenceToleranceMinutes && absMinutes(wakeDrift) <= AdherenceToleranceMinutes {
			a.AdherentNights++
		}
	}

	if a.NightsChecked == 0 {
		return a
	}

	a.Rate = math.Round(float64(a.AdherentNights)/float64(a.NightsChecked)*1000) / 10
	switch {
	case a.Rate >= adherenceHighRate:
		a.Category = domain.AdherenceHigh
	case a.Rate < adherenceLowRate:
		a.Category = domain.AdherenceLow
	default:
		a.Category = domain.AdherenceModerate
	}
	return a
}

func absMinutes(m int) int {
	if m < 0 {
		return -m
	}
	return m
}
