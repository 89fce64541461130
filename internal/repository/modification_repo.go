package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
)

// ModificationRepository append-only access to the change ledger
type ModificationRepository interface {
	Create(ctx context.Context, m *model.Modification) error
	// ListByModelType newest first
	ListByModelType(ctx context.Context, modelType string) ([]model.Modification, error)
}

type modificationRepo struct {
	db *gorm.DB
}

// NewModificationRepo creates a ModificationRepository
func NewModificationRepo(db *gorm.DB) ModificationRepository {
	return &modificationRepo{db: db}
}

func (r *modificationRepo) Create(ctx context.Context, m *model.Modification) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *modificationRepo) ListByModelType(ctx context.Context, modelType string) ([]model.Modification, error) {
	var mods []model.Modification
	err := r.db.WithContext(ctx).
		Where("model_type = ?", modelType).
		Order("created_at DESC").
		Order("id DESC").
		Find(&mods).Error
	return mods, err
}
