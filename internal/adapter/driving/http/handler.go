package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/vistacall/relay/internal/core/port"
	"github.com/vistacall/relay/internal/core/service"
)

type Handler struct {
	Registry     port.PresenceRegistry
	CallService  *service.CallService
	PushService  *service.PushService
	TokenService *service.TokenService
}

func NewHandler(registry port.PresenceRegistry, callService *service.CallService, pushService *service.PushService, tokenService *service.TokenService) *Handler {
	return &Handler{
		Registry:     registry,
		CallService:  callService,
		PushService:  pushService,
		TokenService: tokenService,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/rtcToken", h.IssueToken)
	r.Post("/sendPush", h.SendPush)

	r.Get("/ws", h.ServeWS)

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
