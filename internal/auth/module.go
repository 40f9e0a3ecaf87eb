// Package auth provides the account bounded context: registration,
// login, and the user listings other modules read.
package auth

import (
	"samakicash_backend/internal/auth/handler"
	"samakicash_backend/internal/auth/repository"
	"samakicash_backend/internal/auth/service"
	"samakicash_backend/internal/events"
	apphttp "samakicash_backend/internal/http"
	"samakicash_backend/platform/config"
	"samakicash_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule wires the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, bus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "auth" }

// RegisterRoutes mounts auth routes. Registration and login are public
// but rate limited more aggressively than the rest of the API.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	if ctx.AuthRateLimiter != nil {
		group.Use(ctx.AuthRateLimiter.RateLimit())
	}
	m.handler.RegisterRoutes(group)
}

// Service exposes the auth service for composition in main.
func (m *Module) Service() *service.Service { return m.service }

// Repository exposes the accounts repository for read-only consumers
// (user directory, notification addressing).
func (m *Module) Repository() *repository.Repository { return m.repo }
