package handler

import "github.com/Joechristian9/SituationalReport-sub000/internal/service"

// Handler aggregates every HTTP handler
type Handler struct {
	Auth                 *AuthHandler
	User                 *UserHandler
	Typhoon              *TyphoonHandler
	Report               *ReportHandler
	Modification         *ModificationHandler
	Snapshot             *SnapshotHandler
	CommunicationService *CommunicationServiceHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:                 NewAuthHandler(svc.Auth),
		User:                 NewUserHandler(svc.User),
		Typhoon:              NewTyphoonHandler(svc.Typhoon, svc.Snapshot, svc.Export),
		Report:               NewReportHandler(svc.Report),
		Modification:         NewModificationHandler(svc.Modification),
		Snapshot:             NewSnapshotHandler(svc.Snapshot, svc.Export),
		CommunicationService: NewCommunicationServiceHandler(svc.CommunicationService),
	}
}
