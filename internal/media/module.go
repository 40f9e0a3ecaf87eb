package media

import (
	apphttp "samakicash_backend/internal/http"
)

// Module serves stored voice messages, implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule wires the media module around the voice storage.
func NewModule(signer URLSigner) *Module {
	return &Module{handler: NewHandler(signer)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "media" }

// RegisterRoutes mounts the audio route at the engine root; voice URLs
// in analysis responses are of the form /audio/<filename>.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/audio/:filename", m.handler.Audio)
}
