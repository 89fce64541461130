package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/events"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/metrics"
)

// ── typhoon lifecycle errors ──

var (
	ErrTyphoonNotFound    = fmt.Errorf("%w: typhoon not found", pkgerrors.ErrNotFound)
	ErrTyphoonAlreadyOpen = fmt.Errorf("%w: another typhoon is still active or paused", pkgerrors.ErrConflict)
	ErrTyphoonEnded       = fmt.Errorf("%w: typhoon has already ended", pkgerrors.ErrInvalidState)
	ErrTyphoonNotActive   = fmt.Errorf("%w: only an active typhoon can be paused", pkgerrors.ErrInvalidState)
	ErrTyphoonNotPaused   = fmt.Errorf("%w: only a paused typhoon can be resumed", pkgerrors.ErrInvalidState)
	ErrTyphoonNotEnded    = fmt.Errorf("%w: typhoon must be ended first", pkgerrors.ErrInvalidState)
	ErrTyphoonHasRecords  = fmt.Errorf("%w: typhoon still has report records", pkgerrors.ErrConflict)
	ErrTyphoonChanged     = fmt.Errorf("%w: typhoon was changed by another request", pkgerrors.ErrConflict)
)

// ReportGenerator renders and stores the consolidated report of a typhoon
type ReportGenerator interface {
	Generate(ctx context.Context, typhoon *model.Typhoon) (string, error)
}

// TyphoonService typhoon lifecycle: active ⇄ paused → ended
type TyphoonService interface {
	// GetActive returns the open (active or paused) typhoon, or nil
	GetActive(ctx context.Context) (*model.Typhoon, error)
	HasActive(ctx context.Context) (bool, error)
	Active(ctx context.Context) (*dto.ActiveTyphoonResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.TyphoonResponse, error)
	List(ctx context.Context) ([]dto.TyphoonResponse, error)

	Create(ctx context.Context, req *dto.CreateTyphoonRequest, actor Actor) (*dto.TyphoonResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateTyphoonRequest, actor Actor) (*dto.TyphoonResponse, error)
	Pause(ctx context.Context, id uint, actor Actor) (*dto.TyphoonResponse, error)
	Resume(ctx context.Context, id uint, actor Actor) (*dto.TyphoonResponse, error)
	End(ctx context.Context, id uint, actor Actor) (*dto.EndTyphoonResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
	// RegenerateReport renders the report of an ended typhoon again
	RegenerateReport(ctx context.Context, id uint, actor Actor) (*dto.EndTyphoonResponse, error)
}

type typhoonService struct {
	repo      *repository.Repository
	reports   ReportGenerator
	publisher events.Publisher
	metrics   *metrics.Metrics
	clock     clockwork.Clock
	logger    *zap.Logger
}

// NewTyphoonService creates a TyphoonService
func NewTyphoonService(
	repo *repository.Repository,
	reports ReportGenerator,
	publisher events.Publisher,
	m *metrics.Metrics,
	clock clockwork.Clock,
	logger *zap.Logger,
) TyphoonService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &typhoonService{
		repo:      repo,
		reports:   reports,
		publisher: publisher,
		metrics:   m,
		clock:     clock,
		logger:    logger,
	}
}

// ────────────────────── queries ──────────────────────

func (s *typhoonService) GetActive(ctx context.Context) (*model.Typhoon, error) {
	t, err := s.repo.Typhoon.GetOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("load open typhoon failed", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *typhoonService) HasActive(ctx context.Context) (bool, error) {
	t, err := s.GetActive(ctx)
	if err != nil {
		return false, err
	}
	return t != nil, nil
}

func (s *typhoonService) Active(ctx context.Context) (*dto.ActiveTyphoonResponse, error) {
	t, err := s.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return &dto.ActiveTyphoonResponse{Active: false}, nil
	}
	return &dto.ActiveTyphoonResponse{Active: true, Typhoon: toTyphoonResponse(t)}, nil
}

func (s *typhoonService) GetByID(ctx context.Context, id uint) (*dto.TyphoonResponse, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTyphoonResponse(t), nil
}

func (s *typhoonService) List(ctx context.Context) ([]dto.TyphoonResponse, error) {
	typhoons, err := s.repo.Typhoon.List(ctx)
	if err != nil {
		s.logger.Error("list typhoons failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TyphoonResponse, 0, len(typhoons))
	for i := range typhoons {
		result = append(result, *toTyphoonResponse(&typhoons[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *typhoonService) Create(ctx context.Context, req *dto.CreateTyphoonRequest, actor Actor) (*dto.TyphoonResponse, error) {
	var created *model.Typhoon

	// the partial unique index on open typhoons settles concurrent creates
	err := s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Typhoon.GetOpen(ctx); err == nil {
			return ErrTyphoonAlreadyOpen
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		t := &model.Typhoon{
			Name:        req.Name,
			Description: req.Description,
			Status:      model.TyphoonActive,
			StartedAt:   s.clock.Now(),
			CreatedBy:   actor.ID,
		}
		if err := tx.Typhoon.Create(ctx, t); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTyphoonAlreadyOpen
			}
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTyphoonAlreadyOpen) {
			s.logger.Error("create typhoon failed", zap.String("name", req.Name), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("typhoon created",
		zap.Uint("typhoon_id", created.ID),
		zap.String("name", created.Name),
		zap.String("actor", actor.ID),
	)
	s.transitioned(ctx, "create", events.TyphoonCreated, created, actor)
	return toTyphoonResponse(created), nil
}

// ────────────────────── Update ──────────────────────

func (s *typhoonService) Update(ctx context.Context, id uint, req *dto.UpdateTyphoonRequest, actor Actor) (*dto.TyphoonResponse, error) {
	t, err := s.transition(ctx, id, "update", func(t *model.Typhoon) error {
		if t.Status == model.TyphoonEnded {
			return ErrTyphoonEnded
		}
		t.Name = req.Name
		t.Description = req.Description
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.transitioned(ctx, "update", events.TyphoonUpdated, t, actor)
	return toTyphoonResponse(t), nil
}

// ────────────────────── Pause / Resume ──────────────────────

func (s *typhoonService) Pause(ctx context.Context, id uint, actor Actor) (*dto.TyphoonResponse, error) {
	t, err := s.transition(ctx, id, "pause", func(t *model.Typhoon) error {
		if t.Status != model.TyphoonActive {
			return ErrTyphoonNotActive
		}
		now := s.clock.Now()
		t.Status = model.TyphoonPaused
		t.PausedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.transitioned(ctx, "pause", events.TyphoonPaused, t, actor)
	return toTyphoonResponse(t), nil
}

func (s *typhoonService) Resume(ctx context.Context, id uint, actor Actor) (*dto.TyphoonResponse, error) {
	t, err := s.transition(ctx, id, "resume", func(t *model.Typhoon) error {
		if t.Status != model.TyphoonPaused {
			return ErrTyphoonNotPaused
		}
		now := s.clock.Now()
		t.Status = model.TyphoonActive
		t.ResumedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.transitioned(ctx, "resume", events.TyphoonResumed, t, actor)
	return toTyphoonResponse(t), nil
}

// ────────────────────── End ──────────────────────

// End is terminal. Report generation runs after the state change is committed and
// its failure is returned in the response, never as an error.
func (s *typhoonService) End(ctx context.Context, id uint, actor Actor) (*dto.EndTyphoonResponse, error) {
	t, err := s.transition(ctx, id, "end", func(t *model.Typhoon) error {
		if t.Status == model.TyphoonEnded {
			return ErrTyphoonEnded
		}
		now := s.clock.Now()
		endedBy := actor.ID
		t.Status = model.TyphoonEnded
		t.EndedAt = &now
		t.EndedBy = &endedBy
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := s.generateReport(ctx, t)
	s.transitioned(ctx, "end", events.TyphoonEnded, t, actor)
	return resp, nil
}

func (s *typhoonService) RegenerateReport(ctx context.Context, id uint, actor Actor) (*dto.EndTyphoonResponse, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TyphoonEnded {
		return nil, ErrTyphoonNotEnded
	}

	s.logger.Info("regenerating typhoon report", zap.Uint("typhoon_id", t.ID), zap.String("actor", actor.ID))
	return s.generateReport(ctx, t), nil
}

func (s *typhoonService) generateReport(ctx context.Context, t *model.Typhoon) *dto.EndTyphoonResponse {
	resp := &dto.EndTyphoonResponse{}

	path, err := s.reports.Generate(ctx, t)
	if err != nil {
		s.metrics.RenderFailed()
		s.logger.Error("typhoon report generation failed",
			zap.Uint("typhoon_id", t.ID),
			zap.String("name", t.Name),
			zap.Error(err),
		)
		msg := err.Error()
		resp.ReportError = &msg
	} else if err := s.repo.Typhoon.SetReportPath(ctx, t.ID, path); err != nil {
		// the typhoon may have been deleted while the report rendered
		s.logger.Error("store report path failed", zap.Uint("typhoon_id", t.ID), zap.String("path", path), zap.Error(err))
		msg := pkgerrors.Persistence("store report path", err).Error()
		resp.ReportError = &msg
	} else {
		t.ReportPath = &path
	}

	resp.ReportPath = t.ReportPath
	resp.Typhoon = *toTyphoonResponse(t)
	return resp
}

// ────────────────────── Delete ──────────────────────

func (s *typhoonService) Delete(ctx context.Context, id uint, actor Actor) error {
	var deleted *model.Typhoon
	err := s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		t, err := s.lockTyphoon(ctx, tx, id)
		if err != nil {
			return err
		}
		if t.Status != model.TyphoonEnded {
			return ErrTyphoonNotEnded
		}
		if err := tx.Typhoon.Delete(ctx, t.ID); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrTyphoonHasRecords
			}
			s.logger.Error("delete typhoon failed", zap.Uint("typhoon_id", t.ID), zap.Error(err))
			return err
		}
		deleted = t
		return nil
	})
	if err != nil {
		return err
	}

	s.transitioned(ctx, "delete", events.TyphoonDeleted, deleted, actor)
	return nil
}

// ── helpers ──

func (s *typhoonService) load(ctx context.Context, id uint) (*model.Typhoon, error) {
	t, err := s.repo.Typhoon.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTyphoonNotFound
		}
		s.logger.Error("load typhoon failed", zap.Uint("typhoon_id", id), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *typhoonService) lockTyphoon(ctx context.Context, tx *repository.Repository, id uint) (*model.Typhoon, error) {
	t, err := tx.Typhoon.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTyphoonNotFound
		}
		s.logger.Error("lock typhoon failed", zap.Uint("typhoon_id", id), zap.Error(err))
		return nil, err
	}
	return t, nil
}

// transition applies change to the locked row and writes it back only if the
// stored status is still the one change was checked against
func (s *typhoonService) transition(ctx context.Context, id uint, action string, change func(t *model.Typhoon) error) (*model.Typhoon, error) {
	var out *model.Typhoon
	err := s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		t, err := s.lockTyphoon(ctx, tx, id)
		if err != nil {
			return err
		}
		from := t.Status
		if err := change(t); err != nil {
			return err
		}
		if err := tx.Typhoon.UpdateIfStatus(ctx, t, from); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTyphoonChanged
			}
			s.logger.Error("save typhoon failed",
				zap.String("action", action),
				zap.Uint("typhoon_id", t.ID),
				zap.Error(err),
			)
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transitioned counts the transition and publishes the event; publish failures are only logged
func (s *typhoonService) transitioned(ctx context.Context, action, eventType string, t *model.Typhoon, actor Actor) {
	s.metrics.TyphoonTransition(action)

	ev := events.TyphoonEvent{
		Type:       eventType,
		TyphoonID:  t.ID,
		Name:       t.Name,
		Status:     t.Status,
		ActorID:    actor.ID,
		OccurredAt: s.clock.Now(),
	}
	if t.ReportPath != nil {
		ev.ReportPath = *t.ReportPath
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish typhoon event failed",
			zap.String("type", eventType),
			zap.Uint("typhoon_id", t.ID),
			zap.Error(err),
		)
	}
}

func toTyphoonResponse(t *model.Typhoon) *dto.TyphoonResponse {
	return &dto.TyphoonResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		StartedAt:   formatTime(t.StartedAt),
		PausedAt:    formatTimePtr(t.PausedAt),
		ResumedAt:   formatTimePtr(t.ResumedAt),
		EndedAt:     formatTimePtr(t.EndedAt),
		CreatedBy:   t.CreatedBy,
		EndedBy:     t.EndedBy,
		ReportPath:  t.ReportPath,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
