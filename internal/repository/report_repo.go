package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportFilter narrows a report listing; zero fields are ignored
type ReportFilter struct {
	TyphoonID *uint
	Untagged  bool       // only rows with no typhoon
	Since     *time.Time // created_at >= Since
	Year      int        // created within the calendar year
}

// ReportRepository data access for one report entity type
type ReportRepository[T any] interface {
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	GetByIDs(ctx context.Context, ids []uint) ([]T, error)
	List(ctx context.Context, f ReportFilter) ([]T, error)
	DeleteByTyphoon(ctx context.Context, typhoonID uint) error
}

type reportRepo[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewReportRepo creates the GORM implementation for entity T; preloads name
// associations loaded on reads
func NewReportRepo[T any](db *gorm.DB, preloads ...string) ReportRepository[T] {
	return &reportRepo[T]{db: db, preloads: preloads}
}

func (r *reportRepo[T]) query(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		db = db.Preload(p)
	}
	return db
}

func (r *reportRepo[T]) Create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

func (r *reportRepo[T]) Update(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

func (r *reportRepo[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var rec T
	err := r.query(ctx).
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *reportRepo[T]) GetByIDs(ctx context.Context, ids []uint) ([]T, error) {
	var recs []T
	if len(ids) == 0 {
		return recs, nil
	}
	err := r.query(ctx).
		Where("id IN ?", ids).
		Find(&recs).Error
	return recs, err
}

func (r *reportRepo[T]) List(ctx context.Context, f ReportFilter) ([]T, error) {
	var recs []T
	db := r.query(ctx)

	switch {
	case f.TyphoonID != nil:
		db = db.Where("typhoon_id = ?", *f.TyphoonID)
	case f.Untagged:
		db = db.Where("typhoon_id IS NULL")
	}
	if f.Since != nil {
		db = db.Where("created_at >= ?", *f.Since)
	}
	if f.Year > 0 {
		from := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.Local)
		db = db.Where("created_at >= ? AND created_at < ?", from, from.AddDate(1, 0, 0))
	}

	err := db.Order("created_at ASC").Order("id ASC").Find(&recs).Error
	return recs, err
}

func (r *reportRepo[T]) DeleteByTyphoon(ctx context.Context, typhoonID uint) error {
	var zero T
	return r.db.WithContext(ctx).
		Where("typhoon_id = ?", typhoonID).
		Delete(&zero).Error
}
