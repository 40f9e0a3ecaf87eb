// Package analysis provides the catch-analysis bounded context: the
// orchestration pipeline, its upstream AI clients, and the HTTP
// endpoints that trigger it.
package analysis

import (
	"samakicash_backend/internal/analysis/clients"
	"samakicash_backend/internal/analysis/handler"
	"samakicash_backend/internal/analysis/service"
	catchesrepo "samakicash_backend/internal/catches/repository"
	"samakicash_backend/internal/credit"
	"samakicash_backend/internal/events"
	apphttp "samakicash_backend/internal/http"
	"samakicash_backend/internal/matchmaking"
	matchrepo "samakicash_backend/internal/matchmaking/repository"
	"samakicash_backend/platform/config"
	"samakicash_backend/platform/logger"
	"samakicash_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the analysis bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the pipeline with its concrete collaborators. The
// voice store and notifier are passed in because their lifecycles
// (object storage, task queue) belong to the composition root.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, val *validator.Validator, log *logger.Logger, voices clients.VoiceStore, notifier service.Notifier) *Module {
	pricer := clients.NewMistralPricer(cfg.GetMistralAPIKey(), cfg.GetMistralBaseURL())
	analyst := clients.NewAIMLMarketAnalyst(cfg.GetAIMLAPIKey(), cfg.GetAIMLBaseURL())
	vision := clients.NewNebiusVision(cfg.GetNebiusAPIKey(), cfg.GetNebiusBaseURL())
	synthesizer := clients.NewElevenLabsSynthesizer(cfg.GetElevenLabsAPIKey(), cfg.GetElevenLabsBaseURL(), voices)

	catchStore := catchesrepo.New(pool)
	matcher := matchmaking.New(matchrepo.New(pool))
	scorer := credit.New(catchStore)

	svc := service.New(pricer, analyst, vision, synthesizer, matcher, scorer, catchStore, notifier, bus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "analysis" }

// RegisterRoutes mounts the analysis endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1)
}
