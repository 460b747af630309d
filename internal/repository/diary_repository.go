package repository

import (
	"context"
	"errors"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/pkg/pagination"
	"gorm.io/gorm"
)

type DiaryRepository interface {
	Create(ctx context.Context, entry *domain.DiaryEntry) error
	// Replace overwrites the entry for its log date wholesale.
	Replace(ctx context.Context, entry *domain.DiaryEntry) error
	GetByDate(ctx context.Context, logDate string) (*domain.DiaryEntry, error)
	ExistsByDate(ctx context.Context, logDate string) (bool, error)
	// List returns entries newest first, honoring the filter's range,
	// cursor and limit (one extra row is fetched to detect more pages).
	List(ctx context.Context, filter domain.DiaryFilter) ([]domain.DiaryEntry, error)
	// ListRange returns entries with from <= log_date <= to in
	// chronological order.
	ListRange(ctx context.Context, from, to string) ([]domain.DiaryEntry, error)
	ListAll(ctx context.Context) ([]domain.DiaryEntry, error)
	Count(ctx context.Context) (int64, error)
}

type diaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) Create(ctx context.Context, entry *domain.DiaryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *diaryRepository) Replace(ctx context.Context, entry *domain.DiaryEntry) error {
	var existing domain.DiaryEntry
	err := r.db.WithContext(ctx).First(&existing, "log_date = ?", entry.LogDate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *diaryRepository) GetByDate(ctx context.Context, logDate string) (*domain.DiaryEntry, error) {
	var entry domain.DiaryEntry
	err := r.db.WithContext(ctx).First(&entry, "log_date = ?", logDate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *diaryRepository) ExistsByDate(ctx context.Context, logDate string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.DiaryEntry{}).
		Where("log_date = ?", logDate).
		Count(&count).Error
	return count > 0, err
}

func (r *diaryRepository) List(ctx context.Context, filter domain.DiaryFilter) ([]domain.DiaryEntry, error) {
	query := r.db.WithContext(ctx).Order("log_date DESC")

	if filter.From != "" {
		query = query.Where("log_date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("log_date <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			query = query.Where("log_date < ?", cursor.LogDate)
		}
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var entries []domain.DiaryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *diaryRepository) ListRange(ctx context.Context, from, to string) ([]domain.DiaryEntry, error) {
	var entries []domain.DiaryEntry
	err := r.db.WithContext(ctx).
		Where("log_date >= ? AND log_date <= ?", from, to).
		Order("log_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *diaryRepository) ListAll(ctx context.Context) ([]domain.DiaryEntry, error) {
	var entries []domain.DiaryEntry
	err := r.db.WithContext(ctx).Order("log_date ASC").Find(&entries).Error
	return entries, err
}

func (r *diaryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DiaryEntry{}).Count(&count).Error
	return count, err
}
