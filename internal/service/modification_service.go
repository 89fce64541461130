package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
)

// ErrUnknownModelType the model type has no change history
var ErrUnknownModelType = fmt.Errorf("%w: unknown model type", pkgerrors.ErrNotFound)

// ModificationService append-only field change ledger
type ModificationService interface {
	// History "<model_id>_<field>" → changes, newest first. name is a model
	// type ("Casualty") or an entity key ("casualties").
	History(ctx context.Context, name string) (*dto.HistoryResponse, error)
}

type modificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewModificationService creates a ModificationService
func NewModificationService(repo *repository.Repository, logger *zap.Logger) ModificationService {
	return &modificationService{repo: repo, logger: logger}
}

func (s *modificationService) History(ctx context.Context, name string) (*dto.HistoryResponse, error) {
	e, ok := lookupEntity(name)
	if !ok || !e.spec().Tracked {
		return nil, ErrUnknownModelType
	}
	modelType := e.spec().ModelType

	mods, err := s.repo.Modification.ListByModelType(ctx, modelType)
	if err != nil {
		s.logger.Error("load modifications failed", zap.String("model_type", modelType), zap.Error(err))
		return nil, err
	}

	// rows arrive newest first, so appending keeps each timeline newest first
	history := make(map[string][]dto.FieldHistoryEntry)
	for _, m := range mods {
		changes := m.Changes.Data()
		fields := make([]string, 0, len(changes))
		for f := range changes {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		for _, f := range fields {
			c := changes[f]
			key := fmt.Sprintf("%d_%s", m.ModelID, f)
			history[key] = append(history[key], dto.FieldHistoryEntry{
				Old:       c.Old,
				New:       c.New,
				User:      dto.UserSummary{ID: c.User.ID, Name: c.User.Name},
				Timestamp: formatTime(m.CreatedAt),
			})
		}
	}

	return &dto.HistoryResponse{ModelType: modelType, History: history}, nil
}

// recordModification appends one Modification bundling every changed field of one
// update; it writes through repo so the gateway can run it inside its transaction
func recordModification(ctx context.Context, repo *repository.Repository, modelType string, modelID uint, changes map[string]ValueChange, actor Actor) error {
	if len(changes) == 0 {
		return nil
	}
	set := make(model.ChangeSet, len(changes))
	user := actor.snapshot()
	for field, c := range changes {
		set[field] = model.FieldChange{Old: c.Old, New: c.New, User: user}
	}
	return repo.Modification.Create(ctx, &model.Modification{
		ModelType: modelType,
		ModelID:   modelID,
		Changes:   datatypes.NewJSONType(set),
	})
}
