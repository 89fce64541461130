package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
)

// entityEndpoint type-erased operations on one report entity
type entityEndpoint interface {
	spec() *EntitySpec
	bulk(ctx context.Context, repo *repository.Repository, rows []map[string]any, typhoonID *uint, actor Actor) (*dto.BulkSubmitResponse, error)
	update(ctx context.Context, repo *repository.Repository, id uint, row map[string]any, actor Actor) (any, error)
	get(ctx context.Context, repo *repository.Repository, id uint) (any, error)
	list(ctx context.Context, repo *repository.Repository, f repository.ReportFilter) ([]any, error)
	gather(ctx context.Context, repo *repository.Repository, f repository.ReportFilter) ([]map[string]any, error)
}

// endpoint implements the bulk upsert gateway for entity T
type endpoint[T any, PT interface {
	*T
	model.Record
}] struct {
	def    EntitySpec
	repoOf func(*repository.Repository) repository.ReportRepository[T]
	// check validates references that need the database; prev is nil for new rows
	check func(ctx context.Context, repo *repository.Repository, rec, prev PT, prefix string, verr *pkgerrors.ValidationError) error
	// decorate adds display values to a snapshot row
	decorate func(rec PT, row map[string]any)
}

func newEndpoint[T any, PT interface {
	*T
	model.Record
}](def EntitySpec, repoOf func(*repository.Repository) repository.ReportRepository[T]) *endpoint[T, PT] {
	return &endpoint[T, PT]{def: def, repoOf: repoOf}
}

func (e *endpoint[T, PT]) spec() *EntitySpec { return &e.def }

type pendingRow[T any] struct {
	index int
	rec   *T
	prev  *T // stored record when the row updates by id
}

// ────────────────────── bulk ──────────────────────

func (e *endpoint[T, PT]) bulk(ctx context.Context, repo *repository.Repository, rows []map[string]any, typhoonID *uint, actor Actor) (*dto.BulkSubmitResponse, error) {
	store := e.repoOf(repo)
	verr := pkgerrors.NewValidationError()

	// 1. resolve ids up front; replace mode re-inserts everything so ids are ignored
	ids := make([]uint, len(rows))
	var lookup []uint
	if !e.def.ReplaceMode {
		for i, raw := range rows {
			id, ok, err := rowID(raw)
			if err != nil {
				verr.Add(fmt.Sprintf("rows[%d].id", i), err.Error())
				continue
			}
			if ok {
				ids[i] = id
				lookup = append(lookup, id)
			}
		}
	}
	existing := make(map[uint]*T, len(lookup))
	if len(lookup) > 0 {
		found, err := store.GetByIDs(ctx, lookup)
		if err != nil {
			return nil, pkgerrors.Persistence("load "+e.def.Key, err)
		}
		for i := range found {
			existing[PT(&found[i]).Base().ID] = &found[i]
		}
	}

	// 2. skip empty rows, decode and validate the rest before any write
	resp := &dto.BulkSubmitResponse{Entity: e.def.Key, Rows: []any{}}
	var work []pendingRow[T]
	for i, raw := range rows {
		fields := e.inputFields(raw)
		if e.def.IsEmpty(fields) {
			resp.Skipped++
			continue
		}

		var prev *T
		if ids[i] != 0 {
			prev = existing[ids[i]]
			if prev == nil {
				return nil, fmt.Errorf("%w: rows[%d] refers to unknown id %d", ErrReportRecordNotFound, i, ids[i])
			}
		}

		prefix := fmt.Sprintf("rows[%d]", i)
		rec, ok := e.prepare(prev, fields, prefix, verr)
		if !ok {
			continue
		}
		if e.check != nil {
			if err := e.check(ctx, repo, PT(rec), PT(prev), prefix, verr); err != nil {
				return nil, err
			}
		}
		work = append(work, pendingRow[T]{index: i, rec: rec, prev: prev})
	}
	if !verr.Empty() {
		return nil, verr
	}

	// 3. write
	if e.def.ReplaceMode {
		return e.replace(ctx, repo, work, typhoonID, actor, resp)
	}

	// rows are written one by one; a failure keeps the rows already saved
	for _, w := range work {
		if w.prev == nil {
			stampNew(PT(w.rec), actor, typhoonID)
			if err := store.Create(ctx, w.rec); err != nil {
				return nil, pkgerrors.Persistence(fmt.Sprintf("create %s rows[%d]", e.def.Key, w.index), err)
			}
			resp.Created++
			resp.Rows = append(resp.Rows, w.rec)
			continue
		}

		changed, err := e.applyUpdate(ctx, repo, w.prev, w.rec, actor)
		if err != nil {
			return nil, err
		}
		if changed {
			resp.Updated++
		} else {
			resp.Skipped++
		}
		resp.Rows = append(resp.Rows, w.rec)
	}
	return resp, nil
}

// replace deletes every row of the typhoon and inserts the batch in one transaction
func (e *endpoint[T, PT]) replace(ctx context.Context, repo *repository.Repository, work []pendingRow[T], typhoonID *uint, actor Actor, resp *dto.BulkSubmitResponse) (*dto.BulkSubmitResponse, error) {
	if typhoonID == nil {
		return nil, ErrNoActiveTyphoon
	}

	err := repo.RunInTx(ctx, func(tx *repository.Repository) error {
		store := e.repoOf(tx)
		if err := store.DeleteByTyphoon(ctx, *typhoonID); err != nil {
			return err
		}
		for _, w := range work {
			stampNew(PT(w.rec), actor, typhoonID)
			if err := store.Create(ctx, w.rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Persistence("replace "+e.def.Key, err)
	}

	for _, w := range work {
		resp.Created++
		resp.Rows = append(resp.Rows, w.rec)
	}
	return resp, nil
}

// ────────────────────── single row ──────────────────────

func (e *endpoint[T, PT]) update(ctx context.Context, repo *repository.Repository, id uint, row map[string]any, actor Actor) (any, error) {
	prev, err := e.load(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	verr := pkgerrors.NewValidationError()
	rec, ok := e.prepare(prev, e.inputFields(row), "", verr)
	if ok && e.check != nil {
		if err := e.check(ctx, repo, PT(rec), PT(prev), "", verr); err != nil {
			return nil, err
		}
	}
	if !verr.Empty() {
		return nil, verr
	}
	if _, err := e.applyUpdate(ctx, repo, prev, rec, actor); err != nil {
		return nil, err
	}
	return rec, nil
}

func (e *endpoint[T, PT]) get(ctx context.Context, repo *repository.Repository, id uint) (any, error) {
	return e.load(ctx, repo, id)
}

func (e *endpoint[T, PT]) list(ctx context.Context, repo *repository.Repository, f repository.ReportFilter) ([]any, error) {
	recs, err := e.repoOf(repo).List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(recs))
	for i := range recs {
		out = append(out, &recs[i])
	}
	return out, nil
}

func (e *endpoint[T, PT]) gather(ctx context.Context, repo *repository.Repository, f repository.ReportFilter) ([]map[string]any, error) {
	recs, err := e.repoOf(repo).List(ctx, f)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(recs))
	for i := range recs {
		row, err := toRowMap(&recs[i])
		if err != nil {
			return nil, err
		}
		if e.decorate != nil {
			e.decorate(PT(&recs[i]), row)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ── helpers ──

func (e *endpoint[T, PT]) load(ctx context.Context, repo *repository.Repository, id uint) (*T, error) {
	rec, err := e.repoOf(repo).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// inputFields keeps the entity's own columns, normalized; bookkeeping and unknown keys are dropped
func (e *endpoint[T, PT]) inputFields(raw map[string]any) map[string]any {
	fields := make(map[string]any, len(e.def.Columns))
	for _, c := range e.def.Columns {
		if v, ok := raw[c.Key]; ok {
			fields[c.Key] = normalizeValue(v)
		}
	}
	return fields
}

// prepare builds the record to write: submitted fields over the stored values when updating
func (e *endpoint[T, PT]) prepare(prev *T, fields map[string]any, prefix string, verr *pkgerrors.ValidationError) (*T, bool) {
	values := fields
	if prev != nil {
		stored, err := toRowMap(prev)
		if err != nil {
			verr.Add(fieldPath(prefix, "row"), "could not be merged")
			return nil, false
		}
		values = make(map[string]any, len(e.def.Columns))
		for _, k := range e.def.columnKeys() {
			values[k] = stored[k]
		}
		for k, v := range fields {
			values[k] = v
		}
	}

	rec, err := decodeRow[T](values)
	if err != nil {
		decodeErrors[T](values, prefix, verr)
		return nil, false
	}
	if prev != nil {
		*PT(rec).Base() = *PT(prev).Base()
	}
	if !validateRecord(rec, prefix, verr) {
		return nil, false
	}
	return rec, true
}

// applyUpdate writes rec when it differs from prev; tracked entities log the diff in the same transaction
func (e *endpoint[T, PT]) applyUpdate(ctx context.Context, repo *repository.Repository, prev, rec *T, actor Actor) (bool, error) {
	changes, err := diffRecords(prev, rec, e.def.columnKeys())
	if err != nil {
		return false, err
	}
	if len(changes) == 0 {
		return false, nil
	}

	base := PT(rec).Base()
	base.UpdatedBy = actor.ID

	write := func(r *repository.Repository) error {
		if err := e.repoOf(r).Update(ctx, rec); err != nil {
			return err
		}
		if e.def.Tracked {
			return recordModification(ctx, r, e.def.ModelType, base.ID, changes, actor)
		}
		return nil
	}

	if e.def.Tracked {
		err = repo.RunInTx(ctx, write)
	} else {
		err = write(repo)
	}
	if err != nil {
		return false, pkgerrors.Persistence(fmt.Sprintf("update %s %d", e.def.Key, base.ID), err)
	}
	return true, nil
}

func stampNew(rec model.Record, actor Actor, typhoonID *uint) {
	base := rec.Base()
	base.ID = 0
	base.UserID = actor.ID
	base.UpdatedBy = actor.ID
	base.TyphoonID = typhoonID
}
