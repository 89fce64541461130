package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
)

var (
	ErrCommunicationServiceNotFound = fmt.Errorf("%w: communication service not found", pkgerrors.ErrNotFound)
	ErrCommunicationServiceExists   = fmt.Errorf("%w: a communication service with this name already exists", pkgerrors.ErrConflict)
)

// CommunicationServiceService maintains the reference list used by communication statuses.
// Entries are disabled, never deleted, so historical rows keep resolving.
type CommunicationServiceService interface {
	List(ctx context.Context, includeInactive bool) ([]dto.CommunicationServiceResponse, error)
	Create(ctx context.Context, req *dto.CreateCommunicationServiceRequest, actor Actor) (*dto.CommunicationServiceResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCommunicationServiceRequest, actor Actor) (*dto.CommunicationServiceResponse, error)
}

type communicationServiceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCommunicationServiceService creates a CommunicationServiceService
func NewCommunicationServiceService(repo *repository.Repository, logger *zap.Logger) CommunicationServiceService {
	return &communicationServiceService{repo: repo, logger: logger}
}

func (s *communicationServiceService) List(ctx context.Context, includeInactive bool) ([]dto.CommunicationServiceResponse, error) {
	list, err := s.repo.CommunicationService.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("list communication services failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.CommunicationServiceResponse, len(list))
	for i := range list {
		out[i] = toCommunicationServiceResponse(&list[i])
	}
	return out, nil
}

func (s *communicationServiceService) Create(ctx context.Context, req *dto.CreateCommunicationServiceRequest, actor Actor) (*dto.CommunicationServiceResponse, error) {
	svc := &model.CommunicationService{
		Name:      strings.TrimSpace(req.Name),
		IsActive:  true,
		CreatedBy: &actor.ID,
		UpdatedBy: &actor.ID,
	}
	if err := s.repo.CommunicationService.Create(ctx, svc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCommunicationServiceExists
		}
		s.logger.Error("create communication service failed", zap.Error(err))
		return nil, err
	}
	resp := toCommunicationServiceResponse(svc)
	return &resp, nil
}

func (s *communicationServiceService) Update(ctx context.Context, id uint, req *dto.UpdateCommunicationServiceRequest, actor Actor) (*dto.CommunicationServiceResponse, error) {
	svc, err := s.repo.CommunicationService.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrCommunicationServiceNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	svc.UpdatedBy = &actor.ID

	if err := s.repo.CommunicationService.Update(ctx, svc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCommunicationServiceExists
		}
		s.logger.Error("update communication service failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toCommunicationServiceResponse(svc)
	return &resp, nil
}

func toCommunicationServiceResponse(c *model.CommunicationService) dto.CommunicationServiceResponse {
	return dto.CommunicationServiceResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}
