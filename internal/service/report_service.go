package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/metrics"
)

// ── report entity errors ──

var (
	ErrUnknownEntity        = fmt.Errorf("%w: unknown report entity", pkgerrors.ErrNotFound)
	ErrReportRecordNotFound = fmt.Errorf("%w: record not found", pkgerrors.ErrNotFound)
	ErrNoActiveTyphoon      = fmt.Errorf("%w: no typhoon is active", pkgerrors.ErrInvalidState)
	ErrTyphoonPausedWrites  = fmt.Errorf("%w: typhoon is paused; data entry is suspended", pkgerrors.ErrInvalidState)
)

// ReportService ingestion and listing of report entity rows
type ReportService interface {
	Catalog() []dto.EntityInfo
	BulkSubmit(ctx context.Context, entity string, rows []map[string]any, actor Actor) (*dto.BulkSubmitResponse, error)
	UpdateRow(ctx context.Context, entity string, id uint, row map[string]any, actor Actor) (any, error)
	GetRow(ctx context.Context, entity string, id uint) (any, error)
	List(ctx context.Context, entity string, q *dto.ReportListQuery) (*dto.ReportListResponse, error)
	// Gather every entity's rows under one filter, in report order
	Gather(ctx context.Context, f repository.ReportFilter) ([]dto.SnapshotSection, error)
}

type reportService struct {
	repo                 *repository.Repository
	requireActiveTyphoon bool
	metrics              *metrics.Metrics
	logger               *zap.Logger
}

// NewReportService creates a ReportService. When requireActiveTyphoon is false,
// typhoon-scoped rows submitted with no open typhoon are stored untagged.
func NewReportService(repo *repository.Repository, requireActiveTyphoon bool, m *metrics.Metrics, logger *zap.Logger) ReportService {
	return &reportService{
		repo:                 repo,
		requireActiveTyphoon: requireActiveTyphoon,
		metrics:              m,
		logger:               logger,
	}
}

func (s *reportService) Catalog() []dto.EntityInfo {
	out := make([]dto.EntityInfo, 0, len(entityCatalog))
	for _, e := range entityCatalog {
		def := e.spec()
		cols := make([]dto.ColumnInfo, 0, len(def.Columns))
		for _, c := range def.Columns {
			cols = append(cols, dto.ColumnInfo{Key: c.Key, Label: c.Label})
		}
		out = append(out, dto.EntityInfo{
			Key:           def.Key,
			Label:         def.Label,
			ModelType:     def.ModelType,
			TyphoonScoped: def.TyphoonScoped,
			Tracked:       def.Tracked,
			ReplaceMode:   def.ReplaceMode,
			Columns:       cols,
		})
	}
	return out
}

// ────────────────────── writes ──────────────────────

func (s *reportService) BulkSubmit(ctx context.Context, entity string, rows []map[string]any, actor Actor) (*dto.BulkSubmitResponse, error) {
	e, ok := entitiesByKey[entity]
	if !ok {
		return nil, ErrUnknownEntity
	}
	typhoonID, err := s.writeScope(ctx, e.spec())
	if err != nil {
		return nil, err
	}

	resp, err := e.bulk(ctx, s.repo, rows, typhoonID, actor)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrPersistence) {
			s.logger.Error("bulk submit failed", zap.String("entity", entity), zap.String("actor", actor.ID), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.BulkRowsProcessed(entity, "created", resp.Created)
	s.metrics.BulkRowsProcessed(entity, "updated", resp.Updated)
	s.metrics.BulkRowsProcessed(entity, "skipped", resp.Skipped)
	s.logger.Info("bulk submit",
		zap.String("entity", entity),
		zap.Int("created", resp.Created),
		zap.Int("updated", resp.Updated),
		zap.Int("skipped", resp.Skipped),
		zap.String("actor", actor.ID),
	)
	return resp, nil
}

func (s *reportService) UpdateRow(ctx context.Context, entity string, id uint, row map[string]any, actor Actor) (any, error) {
	e, ok := entitiesByKey[entity]
	if !ok {
		return nil, ErrUnknownEntity
	}
	if _, err := s.writeScope(ctx, e.spec()); err != nil {
		return nil, err
	}

	rec, err := e.update(ctx, s.repo, id, row, actor)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrPersistence) {
			s.logger.Error("update row failed", zap.String("entity", entity), zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return rec, nil
}

// writeScope resolves the typhoon new rows attach to. Paused typhoons take no writes.
func (s *reportService) writeScope(ctx context.Context, def *EntitySpec) (*uint, error) {
	if !def.TyphoonScoped {
		return nil, nil
	}
	t, err := s.repo.Typhoon.GetOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.requireActiveTyphoon {
				return nil, ErrNoActiveTyphoon
			}
			return nil, nil
		}
		s.logger.Error("load open typhoon failed", zap.Error(err))
		return nil, err
	}
	if t.Status == model.TyphoonPaused {
		return nil, ErrTyphoonPausedWrites
	}
	id := t.ID
	return &id, nil
}

// ────────────────────── reads ──────────────────────

func (s *reportService) GetRow(ctx context.Context, entity string, id uint) (any, error) {
	e, ok := entitiesByKey[entity]
	if !ok {
		return nil, ErrUnknownEntity
	}
	return e.get(ctx, s.repo, id)
}

// List defaults to the open typhoon, hiding rows created before it was last resumed
func (s *reportService) List(ctx context.Context, entity string, q *dto.ReportListQuery) (*dto.ReportListResponse, error) {
	e, ok := entitiesByKey[entity]
	if !ok {
		return nil, ErrUnknownEntity
	}

	var f repository.ReportFilter
	resp := &dto.ReportListResponse{Entity: entity}

	switch {
	case q.TyphoonID != nil:
		f.TyphoonID = q.TyphoonID
		f.Year = q.Year
	case q.Year > 0:
		f.Year = q.Year
	case e.spec().TyphoonScoped:
		t, err := s.repo.Typhoon.GetOpen(ctx)
		switch {
		case err == nil:
			id := t.ID
			f.TyphoonID = &id
			if t.ResumedAt != nil && !q.IncludeStale {
				f.Since = t.ResumedAt
				resp.Since = formatTimePtr(t.ResumedAt)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			f.Untagged = true
		default:
			s.logger.Error("load open typhoon failed", zap.Error(err))
			return nil, err
		}
	}
	resp.TyphoonID = f.TyphoonID

	rows, err := e.list(ctx, s.repo, f)
	if err != nil {
		s.logger.Error("list rows failed", zap.String("entity", entity), zap.Error(err))
		return nil, err
	}
	resp.Rows = rows
	return resp, nil
}

func (s *reportService) Gather(ctx context.Context, f repository.ReportFilter) ([]dto.SnapshotSection, error) {
	sections := make([]dto.SnapshotSection, 0, len(entityCatalog))
	for _, e := range entityCatalog {
		def := e.spec()
		rows, err := e.gather(ctx, s.repo, f)
		if err != nil {
			s.logger.Error("gather rows failed", zap.String("entity", def.Key), zap.Error(err))
			return nil, err
		}
		cols := def.reportColumns()
		columns := make([]dto.SnapshotColumn, 0, len(cols))
		for _, c := range cols {
			columns = append(columns, dto.SnapshotColumn{Key: c.Key, Label: c.Label})
		}
		sections = append(sections, dto.SnapshotSection{
			Entity:  def.Key,
			Label:   def.Label,
			Columns: columns,
			Rows:    rows,
		})
	}
	return sections, nil
}
