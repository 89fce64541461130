package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
)

// TyphoonRepository typhoon data access
type TyphoonRepository interface {
	Create(ctx context.Context, typhoon *model.Typhoon) error
	GetByID(ctx context.Context, id uint) (*model.Typhoon, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id uint) (*model.Typhoon, error)
	GetOpen(ctx context.Context) (*model.Typhoon, error)
	List(ctx context.Context) ([]model.Typhoon, error)
	UpdateIfStatus(ctx context.Context, typhoon *model.Typhoon, from ...string) error
	SetReportPath(ctx context.Context, id uint, path string) error
	Delete(ctx context.Context, id uint) error
}

type typhoonRepo struct {
	db *gorm.DB
}

// NewTyphoonRepo creates a TyphoonRepository
func NewTyphoonRepo(db *gorm.DB) TyphoonRepository {
	return &typhoonRepo{db: db}
}

func (r *typhoonRepo) Create(ctx context.Context, typhoon *model.Typhoon) error {
	return r.db.WithContext(ctx).Create(typhoon).Error
}

func (r *typhoonRepo) GetByID(ctx context.Context, id uint) (*model.Typhoon, error) {
	var typhoon model.Typhoon
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&typhoon).Error
	if err != nil {
		return nil, err
	}
	return &typhoon, nil
}

func (r *typhoonRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Typhoon, error) {
	var typhoon model.Typhoon
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&typhoon).Error
	if err != nil {
		return nil, err
	}
	return &typhoon, nil
}

// GetOpen returns the typhoon that is active or paused; gorm.ErrRecordNotFound when none
func (r *typhoonRepo) GetOpen(ctx context.Context) (*model.Typhoon, error) {
	var typhoon model.Typhoon
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{model.TyphoonActive, model.TyphoonPaused}).
		First(&typhoon).Error
	if err != nil {
		return nil, err
	}
	return &typhoon, nil
}

func (r *typhoonRepo) List(ctx context.Context) ([]model.Typhoon, error) {
	var typhoons []model.Typhoon
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Order("id DESC").
		Find(&typhoons).Error
	return typhoons, err
}

// UpdateIfStatus writes every column of typhoon only while the stored status is
// still one of from; gorm.ErrRecordNotFound when the row is gone or has moved on
func (r *typhoonRepo) UpdateIfStatus(ctx context.Context, typhoon *model.Typhoon, from ...string) error {
	result := r.db.WithContext(ctx).
		Model(typhoon).
		Where("status IN ?", from).
		Select("*").
		Omit("id", "created_at").
		Updates(typhoon)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetReportPath stores the rendered report of an ended typhoon; never inserts
func (r *typhoonRepo) SetReportPath(ctx context.Context, id uint, path string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Typhoon{}).
		Where("id = ? AND status = ?", id, model.TyphoonEnded).
		UpdateColumn("report_path", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes; report rows still referencing the typhoon make this fail
// with gorm.ErrForeignKeyViolated
func (r *typhoonRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Typhoon{}).Error
}
