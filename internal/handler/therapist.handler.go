package handler

import (
	"net/http"

	"go.uber.org/zap"

	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

// TherapistHandler serves the supervisor dashboard pages.
type TherapistHandler struct {
	api      *upstream.Client
	sessions session.Repository
	render   *Renderer
	logger   *zap.Logger
}

func NewTherapistHandler(api *upstream.Client, sessions session.Repository, render *Renderer, logger *zap.Logger) *TherapistHandler {
	return &TherapistHandler{api: api, sessions: sessions, render: render, logger: logger}
}

func (h *TherapistHandler) token(r *http.Request) string {
	sid := session.FromContext(r.Context())
	token, err := h.sessions.Token(r.Context(), sid, session.TherapistTokenKey)
	if err != nil {
		h.logger.Error("session read failed", zap.Error(err))
	}
	return token
}

func (h *TherapistHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "therapist_home", Page{Chrome: h.render.Chrome(r.Context(), "Supervisor Dashboard", "therapist")})
}

func (h *TherapistHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p := profilePage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Supervisor Profile", "therapist")}}

	data, err := h.api.Profile(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load profile")
	} else {
		p.Data = data
	}
	h.render.Render(w, "profile", p)
}
