package service

import (
	"context"
	"sort"
	"time"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/google/uuid"
)

// MockDiaryRepository is an in-memory DiaryRepository keyed by log date.
type MockDiaryRepository struct {
	entries map[string]*domain.DiaryEntry
	err     error
}

func NewMockDiaryRepository() *MockDiaryRepository {
	return &MockDiaryRepository{entries: make(map[string]*domain.DiaryEntry)}
}

func (m *MockDiaryRepository) Create(ctx context.Context, entry *domain.DiaryEntry) error {
	if m.err != nil {
		return m.err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	m.entries[entry.LogDate] = entry
	return nil
}

func (m *MockDiaryRepository) Replace(ctx context.Context, entry *domain.DiaryEntry) error {
	if m.err != nil {
		return m.err
	}
	existing, ok := m.entries[entry.LogDate]
	if !ok {
		return domain.ErrNotFound
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	m.entries[entry.LogDate] = entry
	return nil
}

func (m *MockDiaryRepository) GetByDate(ctx context.Context, logDate string) (*domain.DiaryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	entry, ok := m.entries[logDate]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (m *MockDiaryRepository) ExistsByDate(ctx context.Context, logDate string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.entries[logDate]
	return ok, nil
}

func (m *MockDiaryRepository) List(ctx context.Context, filter domain.DiaryFilter) ([]domain.DiaryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.DiaryEntry
	for _, e := range m.entries {
		if filter.From != "" && e.LogDate < filter.From {
			continue
		}
		if filter.To != "" && e.LogDate > filter.To {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogDate > out[j].LogDate })
	return out, nil
}

func (m *MockDiaryRepository) ListRange(ctx context.Context, from, to string) ([]domain.DiaryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.DiaryEntry
	for _, e := range m.entries {
		if e.LogDate >= from && e.LogDate <= to {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogDate < out[j].LogDate })
	return out, nil
}

func (m *MockDiaryRepository) ListAll(ctx context.Context) ([]domain.DiaryEntry, error) {
	return m.ListRange(ctx, "0000-01-01", "9999-12-31")
}

func (m *MockDiaryRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}

// MockWindowRepository records ReplaceAll calls and can fail on demand.
type MockWindowRepository struct {
	records     []domain.WindowHistoryRecord
	replaceErr  error
	replaceCall int
}

func NewMockWindowRepository() *MockWindowRepository {
	return &MockWindowRepository{}
}

func (m *MockWindowRepository) ListAll(ctx context.Context) ([]domain.WindowHistoryRecord, error) {
	out := make([]domain.WindowHistoryRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MockWindowRepository) ReplaceAll(ctx context.Context, records []domain.WindowHistoryRecord) error {
	m.replaceCall++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.records = make([]domain.WindowHistoryRecord, len(records))
	copy(m.records, records)
	return nil
}

func (m *MockWindowRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.records)), nil
}

// stubWindows resolves every date to one fixed prescription.
type stubWindows struct {
	record domain.WindowHistoryRecord
}

func (s stubWindows) ActiveOn(date string) (domain.WindowHistoryRecord, bool) {
	return s.record, false
}

// Test helpers shared across service tests.

func clockPtr(c domain.ClockTime) *domain.ClockTime {
	return &c
}

func mustClock(s string) domain.ClockTime {
	c, err := domain.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}
