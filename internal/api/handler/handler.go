package handler

import (
	"time"

	"drawspace/backend/internal/auth"
	"drawspace/backend/internal/boardhub"
	"drawspace/backend/internal/storage"
)

// Handler bundles the HTTP surface's dependencies: the durable store,
// the token service, and the relay entry points for the websocket
// upgrade.
type Handler struct {
	Storage  storage.Storage
	Auth     *auth.Service
	Registry *boardhub.Registry
	Relay    *boardhub.Handler

	// InviteTTL bounds how long a redeemed invite jti is remembered.
	InviteTTL time.Duration
}

func NewHandler(s storage.Storage, a *auth.Service, registry *boardhub.Registry, relay *boardhub.Handler, inviteTTL time.Duration) *Handler {
	return &Handler{
		Storage:   s,
		Auth:      a,
		Registry:  registry,
		Relay:     relay,
		InviteTTL: inviteTTL,
	}
}
