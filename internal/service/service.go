package service

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/config"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/events"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/jwt"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/metrics"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/render"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/storage"
)

// Service aggregates every service
type Service struct {
	Auth                 AuthService
	User                 UserService
	Typhoon              TyphoonService
	Report               ReportService
	Modification         ModificationService
	Snapshot             SnapshotService
	Export               ExportService
	CommunicationService CommunicationServiceService
}

// NewService wires the services. The snapshot service is the typhoon
// service's report generator, so it is built first.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	publisher events.Publisher,
	renderer render.Renderer,
	store storage.Store,
	m *metrics.Metrics,
	clock clockwork.Clock,
	logger *zap.Logger,
) *Service {
	report := NewReportService(repo, cfg.Report.RequireActiveTyphoon, m, logger)
	snapshot := NewSnapshotService(repo, report, renderer, store, cfg.Report, clock, logger)

	return &Service{
		Auth:                 NewAuthService(repo, jwtMgr, blacklist, logger),
		User:                 NewUserService(repo, logger),
		Typhoon:              NewTyphoonService(repo, snapshot, publisher, m, clock, logger),
		Report:               report,
		Modification:         NewModificationService(repo, logger),
		Snapshot:             snapshot,
		Export:               NewExportService(snapshot, logger),
		CommunicationService: NewCommunicationServiceService(repo, logger),
	}
}
