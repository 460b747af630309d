package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/repository"
	"github.com/cbti-tools/sleep-diary/internal/sleepday"
	"github.com/cbti-tools/sleep-diary/pkg/pagination"
)

type DiaryService interface {
	// Create records a new entry; at most one entry exists per log date.
	Create(ctx context.Context, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error)
	// Replace overwrites the entry for a date wholesale; derived
	// metrics are recomputed on every read, so no invalidation step.
	Replace(ctx context.Context, logDate string, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error)
	GetByDate(ctx context.Context, logDate string) (*domain.DiaryEntryResponse, error)
	List(ctx context.Context, filter domain.DiaryFilter) (*domain.DiaryListResponse, error)
}

type diaryService struct {
	repo repository.DiaryRepository
}

func NewDiaryService(repo repository.DiaryRepository) DiaryService {
	return &diaryService{repo: repo}
}

func (s *diaryService) Create(ctx context.Context, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error) {
	entry, err := entryFromRequest(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByDate(ctx, entry.LogDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateDate
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	resp := entry.ToResponse(nightFor(entry))
	return &resp, nil
}

func (s *diaryService) Replace(ctx context.Context, logDate string, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error) {
	if req.LogDate != logDate {
		return nil, fmt.Errorf("%w: log_date in body (%s) does not match path (%s)", domain.ErrValidation, req.LogDate, logDate)
	}

	entry, err := entryFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, entry); err != nil {
		return nil, err
	}
	resp := entry.ToResponse(nightFor(entry))
	return &resp, nil
}

func (s *diaryService) GetByDate(ctx context.Context, logDate string) (*domain.DiaryEntryResponse, error) {
	entry, err := s.repo.GetByDate(ctx, logDate)
	if err != nil {
		return nil, err
	}
	resp := entry.ToResponse(nightFor(entry))
	return &resp, nil
}

func (s *diaryService) List(ctx context.Context, filter domain.DiaryFilter) (*domain.DiaryListResponse, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	response := &domain.DiaryListResponse{
		Data: make([]domain.DiaryEntryResponse, len(entries)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i := range entries {
		response.Data[i] = entries[i].ToResponse(nightFor(&entries[i]))
	}

	if hasMore && len(entries) > 0 {
		cursor := &pagination.Cursor{LogDate: entries[len(entries)-1].LogDate}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

// nightFor computes metrics for display; incomplete nights keep a nil
// metrics block in responses but remain visible as raw data.
func nightFor(entry *domain.DiaryEntry) *domain.NightMetrics {
	m := ComputeNight(entry)
	if m.Incomplete {
		return nil
	}
	return &m
}

func entryFromRequest(req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntry, error) {
	entry := &domain.DiaryEntry{
		LogDate:    req.LogDate,
		Bedtime:    req.Bedtime,
		LightsOff:  req.LightsOff,
		SleepOnset: req.SleepOnset,
		FinalWake:  req.FinalWake,
		RiseTime:   req.RiseTime,
		Awakenings: domain.Intervals(req.Awakenings),
		Naps:       domain.Intervals(req.Naps),
		Notes:      req.Notes,
	}
	if entry.Awakenings == nil {
		entry.Awakenings = domain.Intervals{}
	}
	if entry.Naps == nil {
		entry.Naps = domain.Intervals{}
	}
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// validateEntry enforces the ordering invariant
// bedtime <= lights_off <= sleep_onset <= final_wake <= rise_time on
// the sleep-day axis, awakening containment, and nap disjointness.
// Violations are reported, never silently corrected.
func validateEntry(entry *domain.DiaryEntry) error {
	if !domain.ValidDate(entry.LogDate) {
		return fmt.Errorf("%w: invalid log date %q", domain.ErrValidation, entry.LogDate)
	}

	ordered := []struct {
		name string
		t    *domain.ClockTime
	}{
		{"bedtime", entry.Bedtime},
		{"lights_off", entry.LightsOff},
		{"sleep_onset", entry.SleepOnset},
		{"final_wake", entry.FinalWake},
		{"rise_time", entry.RiseTime},
	}

	var prevName string
	var prev *domain.ClockTime
	for _, field := range ordered {
		if field.t == nil {
			continue
		}
		if prev != nil && sleepday.Before(*field.t, *prev) {
			return fmt.Errorf("%w: %s (%s) precedes %s (%s) on the sleep-day axis",
				domain.ErrValidation, field.name, field.t, prevName, prev)
		}
		prevName, prev = field.name, field.t
	}

	if len(entry.Awakenings) > 0 {
		if entry.SleepOnset == nil || entry.FinalWake == nil {
			return fmt.Errorf("%w: awakenings require sleep_onset and final_wake", domain.ErrValidation)
		}
		lo, hi := *entry.SleepOnset, *entry.FinalWake
		for _, awak := range entry.Awakenings {
			if !sleepday.Before(awak.Start, awak.End) {
				return fmt.Errorf("%w: awakening %s-%s has no duration", domain.ErrValidation, awak.Start, awak.End)
			}
			if sleepday.Before(awak.Start, lo) || sleepday.Before(hi, awak.End) {
				return fmt.Errorf("%w: awakening %s-%s lies outside [sleep_onset, final_wake]",
					domain.ErrValidation, awak.Start, awak.End)
			}
		}
	}

	return validateNaps(entry.Naps)
}

// validateNaps requires each daytime nap to run forward on the plain
// clock and all naps to be mutually disjoint.
func validateNaps(naps domain.Intervals) error {
	for _, nap := range naps {
		if nap.End <= nap.Start {
			return fmt.Errorf("%w: nap %s-%s has no duration", domain.ErrValidation, nap.Start, nap.End)
		}
	}

	sorted := make([]domain.Interval, len(naps))
	copy(sorted, naps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return fmt.Errorf("%w: naps %s-%s and %s-%s overlap", domain.ErrValidation,
				sorted[i-1].Start, sorted[i-1].End, sorted[i].Start, sorted[i].End)
		}
	}
	return nil
}
