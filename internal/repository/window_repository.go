package repository

import (
	"context"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"gorm.io/gorm"
)

// WindowRepository persists the window history ledger. The in-memory
// ledger is the source of truth during a session; after each committed
// mutation the full record set is written back in one transaction.
type WindowRepository interface {
	ListAll(ctx context.Context) ([]domain.WindowHistoryRecord, error)
	// ReplaceAll atomically overwrites the persisted history with the
	// ledger's current record set.
	ReplaceAll(ctx context.Context, records []domain.WindowHistoryRecord) error
	Count(ctx context.Context) (int64, error)
}

type windowRepository struct {
	db *gorm.DB
}

func NewWindowRepository(db *gorm.DB) WindowRepository {
	return &windowRepository{db: db}
}

func (r *windowRepository) ListAll(ctx context.Context) ([]domain.WindowHistoryRecord, error) {
	var records []domain.WindowHistoryRecord
	err := r.db.WithContext(ctx).Order("effective_from ASC").Find(&records).Error
	return records, err
}

func (r *windowRepository) ReplaceAll(ctx context.Context, records []domain.WindowHistoryRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.WindowHistoryRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (r *windowRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.WindowHistoryRecord{}).Count(&count).Error
	return count, err
}
