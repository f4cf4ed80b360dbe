// Package handlers implements the ui-api endpoints served by `petly serve`.
//
// The handlers read form values, call the petly API through the shared client and session store, and answer JSON:
// a feedback response (message plus the affected record) on success and an error response on failure.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/petly-community/petly/internal/apperrors"
	"github.com/petly-community/petly/internal/logger"
	"github.com/petly-community/petly/internal/ui/client"
	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/session"
)

type HandlerService struct {
	Session   *session.Store
	ApiClient *client.Client
	Messages  *i18n.Messages
}

// respondWithFailure logs err and writes the error response for it.
// fallbackKey is the localized message used when the error does not carry a user-facing one
func (h *HandlerService) respondWithFailure(w http.ResponseWriter, r *http.Request, err error, fallbackKey string) {
	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Debug("action failed", slog.String("error", err.Error()))

	fallback := h.Messages.Get(fallbackKey)

	var (
		validationErr *forms.ValidationError
		apiErr        *client.APIError
		connErr       *client.ConnectionError
		decodeErr     *client.DecodeError
		storageErr    *session.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeValidationError, validationErr.UserError())
	case errors.As(err, &apiErr):
		code := apperrors.ErrCodeAPIError
		switch apiErr.Status {
		case http.StatusUnauthorized:
			code = apperrors.ErrCodeAuthenticationFailure
		case http.StatusForbidden:
			code = apperrors.ErrCodeAuthorizationFailure
		}
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		responses.RespondWithError(w, r, status, code, client.UserMessage(err, fallback))
	case errors.As(err, &connErr):
		responses.RespondWithError(w, r, http.StatusBadGateway, apperrors.ErrCodeConnectionError, client.UserMessage(err, fallback))
	case errors.As(err, &decodeErr):
		responses.RespondWithError(w, r, http.StatusBadGateway, apperrors.ErrCodeInvalidResponse, client.UserMessage(err, fallback))
	case errors.Is(err, session.ErrSuperseded):
		responses.RespondWithError(w, r, http.StatusConflict, apperrors.ErrCodeRequestSuperseded, h.Messages.Get(i18n.MsgRequestSuperseded))
	case errors.As(err, &storageErr):
		reqLogger.Error("session storage failure", slog.String("error", err.Error()))
		responses.RespondWithError(w, r, http.StatusInternalServerError, apperrors.ErrCodeSessionStorage, h.Messages.Get(i18n.MsgSessionStorageFailed))
	default:
		reqLogger.Error("unexpected error", slog.String("error", err.Error()))
		responses.RespondWithError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternalError, client.UserMessage(err, fallback))
	}
}

// idParam parses the {id} URL parameter. It writes the error response and returns false when the id is not a positive integer
func (h *HandlerService) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidURLParam, h.Messages.Get(i18n.MsgInvalidID))
		return 0, false
	}
	return id, true
}

// optionalString returns nil when the form has no value for name, so partial updates only send the submitted fields
func optionalString(r *http.Request, name string) *string {
	value := r.FormValue(name)
	if _, ok := r.Form[name]; !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	return &value
}

func optionalInt(r *http.Request, name string) (*int, error) {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalFloat(r *http.Request, name string) (*float64, error) {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (h *HandlerService) malformedField(w http.ResponseWriter, r *http.Request, field string, err error) {
	logger.ContextRequestLogger(r.Context()).Debug("malformed form field",
		slog.String("field", field),
		slog.String("error", err.Error()),
	)
	responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, h.Messages.Get(i18n.MsgMalformedBody))
}
