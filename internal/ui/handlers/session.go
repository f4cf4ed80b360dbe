package handlers

import (
	"log/slog"
	"net/http"

	"github.com/petly-community/petly/internal/logger"
	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/session"
)

// SessionResponse describes the session held by the server. The token itself is never returned
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Loading       bool          `json:"loading"`
	User          *session.User `json:"user"`
	TokenStatus   string        `json:"token_status"`
	IsAdmin       bool          `json:"is_admin"`
	IsOng         bool          `json:"is_ong"`
}

func (h *HandlerService) sessionResponse() SessionResponse {
	state := h.Session.State()
	return SessionResponse{
		Authenticated: state.User != nil && state.Token != "",
		Loading:       state.Loading,
		User:          state.User,
		TokenStatus:   h.Session.TokenStatus().String(),
		IsAdmin:       h.Session.IsAdmin(),
		IsOng:         h.Session.IsOng(),
	}
}

func (h *HandlerService) HandleSession(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, h.sessionResponse())
}

func (h *HandlerService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	form := forms.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := form.Validate(h.Messages); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoginFailed)
		return
	}

	if err := h.Session.Login(r.Context(), form.Email, form.Password); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoginFailed)
		return
	}

	if user := h.Session.User(); user != nil {
		logger.ContextWithLogAttrs(r.Context(), slog.Int64("user_id", user.ID))
	}
	reqLogger.Info("user logged in", slog.String("component", "handlers.HandleLogin"))

	responses.RespondWithJSON(w, http.StatusOK, h.sessionResponse())
}

func (h *HandlerService) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	form := forms.RegisterForm{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}
	if err := form.Validate(h.Messages); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgRegisterFailed)
		return
	}

	if err := h.Session.Register(r.Context(), form.Name, form.Email, form.Password); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgRegisterFailed)
		return
	}

	if user := h.Session.User(); user != nil {
		logger.ContextWithLogAttrs(r.Context(), slog.Int64("user_id", user.ID))
	}
	reqLogger.Info("user registered", slog.String("component", "handlers.HandleRegister"))

	responses.RespondWithJSON(w, http.StatusCreated, h.sessionResponse())
}

func (h *HandlerService) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgInternalError)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgLoggedOut), nil)
}
