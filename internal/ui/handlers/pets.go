package handlers

import (
	"net/http"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/types"
)

// HandleListPets returns the pets matching the optional search and status query parameters.
// The search term matches the name, species, breed or owner name, ignoring case and accents
func (h *HandlerService) HandleListPets(w http.ResponseWriter, r *http.Request) {
	status, err := forms.ParsePetStatus(h.Messages, r.FormValue("status"))
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgInvalidStatus)
		return
	}

	pets, err := h.ApiClient.ListPets(r.Context())
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadPetsFailed)
		return
	}

	responses.RespondWithJSON(w, http.StatusOK, types.FilterPets(pets, r.FormValue("search"), status))
}

func (h *HandlerService) HandleGetPet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	pet, err := h.ApiClient.GetPet(r.Context(), id)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadPetFailed)
		return
	}

	responses.RespondWithJSON(w, http.StatusOK, pet)
}

func (h *HandlerService) HandleCreatePet(w http.ResponseWriter, r *http.Request) {
	age, err := optionalInt(r, "age")
	if err != nil {
		h.malformedField(w, r, "age", err)
		return
	}

	form := forms.PetForm{
		Name:        r.FormValue("name"),
		Species:     r.FormValue("species"),
		Breed:       r.FormValue("breed"),
		Age:         age,
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
		Sex:         r.FormValue("sex"),
		PhotoURL:    r.FormValue("photoUrl"),
	}
	payload, err := form.Payload(h.Messages)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgCreatePetFailed)
		return
	}

	pet, err := h.ApiClient.CreatePet(r.Context(), h.Session.Token(), payload)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgCreatePetFailed)
		return
	}

	responses.RespondWithFeedback(w, http.StatusCreated, h.Messages.Get(i18n.MsgPetCreated), pet)
}

// HandleUpdatePet sends the submitted fields only
func (h *HandlerService) HandleUpdatePet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	age, err := optionalInt(r, "age")
	if err != nil {
		h.malformedField(w, r, "age", err)
		return
	}

	payload := types.UpdatePetPayload{
		Name:        optionalString(r, "name"),
		Species:     optionalString(r, "species"),
		Breed:       optionalString(r, "breed"),
		Age:         age,
		Description: optionalString(r, "description"),
		Sex:         optionalString(r, "sex"),
		PhotoURL:    optionalString(r, "photoUrl"),
	}

	if raw := optionalString(r, "status"); raw != nil {
		status, err := forms.ParsePetStatus(h.Messages, *raw)
		if err != nil {
			h.respondWithFailure(w, r, err, i18n.MsgUpdatePetFailed)
			return
		}
		if status != "" {
			payload.Status = &status
		}
	}

	pet, err := h.ApiClient.UpdatePet(r.Context(), h.Session.Token(), id, payload)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgUpdatePetFailed)
		return
	}

	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgPetUpdated), pet)
}

func (h *HandlerService) HandleDeletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if _, err := h.ApiClient.DeletePet(r.Context(), h.Session.Token(), id); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgDeletePetFailed)
		return
	}

	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgPetDeleted), nil)
}
