package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
)

func (h *HandlerService) HandleListAdoptions(w http.ResponseWriter, r *http.Request) {
	adoptions, err := h.ApiClient.ListAdoptions(r.Context(), h.Session.Token())
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadAdoptionsFailed)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, adoptions)
}

// HandleCreateAdoption requests the adoption of the pet given by the petId form value
func (h *HandlerService) HandleCreateAdoption(w http.ResponseWriter, r *http.Request) {
	petID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("petId")), 10, 64)
	if err == nil && petID <= 0 {
		err = fmt.Errorf("petId must be positive, got %d", petID)
	}
	if err != nil {
		h.malformedField(w, r, "petId", err)
		return
	}

	adoption, err := h.ApiClient.CreateAdoption(r.Context(), h.Session.Token(), petID)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgCreateAdoptionFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusCreated, h.Messages.Get(i18n.MsgAdoptionRequested), adoption)
}

func (h *HandlerService) HandleUpdateAdoption(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	status, err := forms.ParseRequestStatus(h.Messages, r.FormValue("status"))
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgUpdateAdoptionFailed)
		return
	}

	adoption, err := h.ApiClient.UpdateAdoptionStatus(r.Context(), h.Session.Token(), id, status)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgUpdateAdoptionFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgAdoptionUpdated), adoption)
}

func (h *HandlerService) HandleDeleteAdoption(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if _, err := h.ApiClient.DeleteAdoption(r.Context(), h.Session.Token(), id); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgDeleteAdoptionFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgAdoptionDeleted), nil)
}
