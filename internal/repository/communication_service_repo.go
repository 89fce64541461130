package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
)

// CommunicationServiceRepository reference list data access. Rows are never deleted
type CommunicationServiceRepository interface {
	Create(ctx context.Context, svc *model.CommunicationService) error
	GetByID(ctx context.Context, id uint) (*model.CommunicationService, error)
	List(ctx context.Context, includeInactive bool) ([]model.CommunicationService, error)
	Update(ctx context.Context, svc *model.CommunicationService) error
}

type communicationServiceRepo struct {
	db *gorm.DB
}

// NewCommunicationServiceRepo creates a CommunicationServiceRepository
func NewCommunicationServiceRepo(db *gorm.DB) CommunicationServiceRepository {
	return &communicationServiceRepo{db: db}
}

func (r *communicationServiceRepo) Create(ctx context.Context, svc *model.CommunicationService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *communicationServiceRepo) GetByID(ctx context.Context, id uint) (*model.CommunicationService, error) {
	var svc model.CommunicationService
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *communicationServiceRepo) List(ctx context.Context, includeInactive bool) ([]model.CommunicationService, error) {
	var svcs []model.CommunicationService
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&svcs).Error
	return svcs, err
}

func (r *communicationServiceRepo) Update(ctx context.Context, svc *model.CommunicationService) error {
	return r.db.WithContext(ctx).Save(svc).Error
}
