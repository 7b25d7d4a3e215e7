package app

import (
	"github.com/69GliTcH/SimpliFin/internal/config"
	"github.com/69GliTcH/SimpliFin/internal/event_bus"
	"github.com/69GliTcH/SimpliFin/internal/utils"
	"github.com/69GliTcH/SimpliFin/pkg/export"
	"github.com/69GliTcH/SimpliFin/pkg/google"
	"github.com/69GliTcH/SimpliFin/pkg/spending"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	"github.com/69GliTcH/SimpliFin/pkg/view"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	GoogleAuth *google.GoogleAuth

	SpendingRepo    spending.Repository
	SpendingService spending.Service
	SpendingFeed    *spending.SnapshotFeed
	SpendingHandler *spending.Handler

	ViewService view.Service
	ViewHandler *view.Handler

	ExportHandler *export.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.EventBus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)

	deps.SpendingRepo = spending.NewRepository(db)
	deps.SpendingService = spending.NewService(deps.SpendingRepo, deps.EventBus, deps.Clock)
	deps.SpendingFeed = spending.NewSnapshotFeed(deps.SpendingRepo, deps.EventBus)
	deps.SpendingHandler = spending.NewHandler(deps.SpendingService, deps.SpendingFeed)

	deps.ViewService = view.NewViewService(deps.SpendingService, deps.Clock)
	deps.ViewHandler = view.NewHandler(deps.ViewService)

	deps.ExportHandler = export.NewHandler(deps.ViewService, deps.Clock)

	return deps
}
