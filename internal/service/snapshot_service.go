package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/config"
	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/render"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/storage"
)

// ── snapshot errors ──

var (
	ErrReportNotGenerated = fmt.Errorf("%w: no report has been generated for this typhoon", pkgerrors.ErrNotFound)
	ErrInvalidYear        = fmt.Errorf("%w: year must be between 1900 and 9999", pkgerrors.ErrValidation)
)

// SnapshotSource supplies every entity's rows under a filter
type SnapshotSource interface {
	Gather(ctx context.Context, f repository.ReportFilter) ([]dto.SnapshotSection, error)
}

// SnapshotService gathers report entities per typhoon or year and renders the consolidated report
type SnapshotService interface {
	GatherForTyphoon(ctx context.Context, typhoonID uint) (*dto.SnapshotResponse, error)
	GatherForYear(ctx context.Context, year int) (*dto.SnapshotResponse, error)
	// Generate renders the typhoon report and stores it; returns the relative path
	Generate(ctx context.Context, typhoon *model.Typhoon) (string, error)
	// OpenReport streams the stored report of a typhoon
	OpenReport(ctx context.Context, typhoonID uint) (io.ReadCloser, string, error)
	// RenderYear renders the annual summary on demand; it is not stored
	RenderYear(ctx context.Context, year int) ([]byte, string, error)
}

type snapshotService struct {
	repo     *repository.Repository
	source   SnapshotSource
	renderer render.Renderer
	store    storage.Store
	cfg      config.ReportConfig
	clock    clockwork.Clock
	logger   *zap.Logger
}

// NewSnapshotService creates a SnapshotService
func NewSnapshotService(
	repo *repository.Repository,
	source SnapshotSource,
	renderer render.Renderer,
	store storage.Store,
	cfg config.ReportConfig,
	clock clockwork.Clock,
	logger *zap.Logger,
) SnapshotService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &snapshotService{
		repo:     repo,
		source:   source,
		renderer: renderer,
		store:    store,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
	}
}

// ────────────────────── gather ──────────────────────

func (s *snapshotService) GatherForTyphoon(ctx context.Context, typhoonID uint) (*dto.SnapshotResponse, error) {
	t, err := s.loadTyphoon(ctx, typhoonID)
	if err != nil {
		return nil, err
	}
	sections, err := s.source.Gather(ctx, repository.ReportFilter{TyphoonID: &t.ID})
	if err != nil {
		return nil, err
	}
	return &dto.SnapshotResponse{Scope: "typhoon", Typhoon: toTyphoonResponse(t), Sections: sections}, nil
}

func (s *snapshotService) GatherForYear(ctx context.Context, year int) (*dto.SnapshotResponse, error) {
	if year < 1900 || year > 9999 {
		return nil, ErrInvalidYear
	}
	sections, err := s.source.Gather(ctx, repository.ReportFilter{Year: year})
	if err != nil {
		return nil, err
	}
	return &dto.SnapshotResponse{Scope: "year", Year: year, Sections: sections}, nil
}

// ────────────────────── Generate ──────────────────────

func (s *snapshotService) Generate(ctx context.Context, t *model.Typhoon) (string, error) {
	sections, err := s.source.Gather(ctx, repository.ReportFilter{TyphoonID: &t.ID})
	if err != nil {
		return "", pkgerrors.Persistence("gather report data", err)
	}

	now := s.clock.Now()
	doc := render.Document{
		Title:       fmt.Sprintf("%s: Typhoon %s", s.cfg.Title, t.Name),
		Office:      s.cfg.Office,
		Subtitle:    typhoonPeriod(t),
		GeneratedAt: now,
		Sections:    toRenderSections(sections),
	}

	data, err := s.renderer.Render(render.TemplateTyphoon, doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pkgerrors.ErrRender, err)
	}

	key := reportKey(t.Name, now)
	if err := s.store.Put(ctx, key, data, "application/pdf"); err != nil {
		return "", fmt.Errorf("%w: store report: %v", pkgerrors.ErrRender, err)
	}

	s.logger.Info("typhoon report generated",
		zap.Uint("typhoon_id", t.ID),
		zap.String("path", key),
		zap.Int("bytes", len(data)),
	)
	return key, nil
}

func (s *snapshotService) RenderYear(ctx context.Context, year int) ([]byte, string, error) {
	snap, err := s.GatherForYear(ctx, year)
	if err != nil {
		return nil, "", err
	}

	doc := render.Document{
		Title:       fmt.Sprintf("%s: Annual Summary %d", s.cfg.Title, year),
		Office:      s.cfg.Office,
		Subtitle:    fmt.Sprintf("January 1 to December 31, %d", year),
		GeneratedAt: s.clock.Now(),
		Sections:    toRenderSections(snap.Sections),
	}
	data, err := s.renderer.Render(render.TemplateAnnual, doc)
	if err != nil {
		s.logger.Error("annual report render failed", zap.Int("year", year), zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", pkgerrors.ErrRender, err)
	}
	return data, fmt.Sprintf("sitrep_%d.pdf", year), nil
}

func (s *snapshotService) OpenReport(ctx context.Context, typhoonID uint) (io.ReadCloser, string, error) {
	t, err := s.loadTyphoon(ctx, typhoonID)
	if err != nil {
		return nil, "", err
	}
	if t.ReportPath == nil || *t.ReportPath == "" {
		return nil, "", ErrReportNotGenerated
	}

	rc, err := s.store.Open(ctx, *t.ReportPath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", ErrReportNotGenerated
		}
		s.logger.Error("open report failed", zap.String("path", *t.ReportPath), zap.Error(err))
		return nil, "", err
	}
	return rc, path.Base(*t.ReportPath), nil
}

// ── helpers ──

func (s *snapshotService) loadTyphoon(ctx context.Context, id uint) (*model.Typhoon, error) {
	t, err := s.repo.Typhoon.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrTyphoonNotFound
		}
		s.logger.Error("load typhoon failed", zap.Uint("typhoon_id", id), zap.Error(err))
		return nil, err
	}
	return t, nil
}

// reportKey reports/<slug(name)>_<yyyymmdd_hhmmss>.pdf
func reportKey(name string, at time.Time) string {
	return fmt.Sprintf("reports/%s_%s.pdf", slugify(name), at.Format("20060102_150405"))
}

func slugify(name string) string {
	var b strings.Builder
	lastSep := true
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			lastSep = false
			continue
		}
		if !lastSep {
			b.WriteByte('_')
			lastSep = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" {
		return "typhoon"
	}
	return slug
}

func typhoonPeriod(t *model.Typhoon) string {
	const layout = "January 2, 2006 15:04"
	if t.EndedAt != nil {
		return fmt.Sprintf("%s to %s", t.StartedAt.Format(layout), t.EndedAt.Format(layout))
	}
	return "Since " + t.StartedAt.Format(layout)
}

func toRenderSections(sections []dto.SnapshotSection) []render.Section {
	out := make([]render.Section, 0, len(sections))
	for _, sec := range sections {
		headers := make([]string, len(sec.Columns))
		for i, c := range sec.Columns {
			headers[i] = c.Label
		}
		rows := make([][]string, 0, len(sec.Rows))
		for _, row := range sec.Rows {
			cells := make([]string, len(sec.Columns))
			for i, c := range sec.Columns {
				cells[i] = formatCell(row[c.Key])
			}
			rows = append(rows, cells)
		}
		out = append(out, render.Section{Title: sec.Label, Headers: headers, Rows: rows})
	}
	return out
}

// formatCell prints JSON-decoded values; whole numbers lose their ".0"
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(x)
	}
}
