package repository

import (
	"context"
	"fmt"

	"github.com/cbti-tools/sleep-diary/internal/domain"
)

// Store loads the diary and the window history as an atomic pair. A
// partial store (entries without history) is a corrupt-store error,
// never silently defaulted.
type Store struct {
	Diary  DiaryRepository
	Window WindowRepository
}

func NewStore(diary DiaryRepository, window WindowRepository) *Store {
	return &Store{Diary: diary, Window: window}
}

// Load fetches both collections. A store holding diary entries but no
// window history fails the whole load; report generation on data that
// was already loaded in memory is unaffected by such a failure.
func (s *Store) Load(ctx context.Context) ([]domain.DiaryEntry, []domain.WindowHistoryRecord, error) {
	entries, err := s.Diary.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load diary entries: %w", err)
	}

	records, err := s.Window.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load window history: %w", err)
	}

	if len(records) == 0 && len(entries) > 0 {
		return nil, nil, fmt.Errorf("%w: %d diary entries but no window history", domain.ErrCorruptStore, len(entries))
	}

	return entries, records, nil
}
