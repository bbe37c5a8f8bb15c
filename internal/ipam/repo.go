package ipam

import (
	"context"
	"errors"

	"ipmanager/internal/models"

	"gorm.io/gorm"
)

// Repo: gorm-реализация Store над таблицей ip_entries.
type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// List: все записи в порядке вставки.
func (r *Repo) List(ctx context.Context) ([]models.IPEntry, error) {
	var out []models.IPEntry
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// Get: запись по id или ErrNotFound.
func (r *Repo) Get(ctx context.Context, id uint) (*models.IPEntry, error) {
	var e models.IPEntry
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repo) Insert(ctx context.Context, e *models.IPEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Update: чтение и запись в одной транзакции.
func (r *Repo) Update(ctx context.Context, id uint, apply func(*models.IPEntry)) (*models.IPEntry, error) {
	var e models.IPEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		apply(&e)
		e.ID = id
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete: число удалённых строк (0, если id не было).
func (r *Repo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.IPEntry{}, id)
	return res.RowsAffected, res.Error
}
