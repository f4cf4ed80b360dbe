package handlers

import (
	"net/http"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/types"
)

func (h *HandlerService) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.ApiClient.ListUsers(r.Context(), h.Session.Token())
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadUsersFailed)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, users)
}

func (h *HandlerService) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	user, err := h.ApiClient.GetUser(r.Context(), h.Session.Token(), id)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadUsersFailed)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, user)
}

func (h *HandlerService) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	payload := types.UpdateUserPayload{
		Name:    optionalString(r, "name"),
		Email:   optionalString(r, "email"),
		Phone:   optionalString(r, "phone"),
		Address: optionalString(r, "address"),
	}
	if raw := optionalString(r, "role"); raw != nil {
		role, err := forms.ParseRole(h.Messages, *raw)
		if err != nil {
			h.respondWithFailure(w, r, err, i18n.MsgUpdateUserFailed)
			return
		}
		payload.Role = &role
	}

	user, err := h.ApiClient.UpdateUser(r.Context(), h.Session.Token(), id, payload)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgUpdateUserFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgUserUpdated), user)
}

func (h *HandlerService) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if _, err := h.ApiClient.DeleteUser(r.Context(), h.Session.Token(), id); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgDeleteUserFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgUserDeleted), nil)
}
