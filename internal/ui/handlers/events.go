package handlers

import (
	"net/http"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
)

func (h *HandlerService) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.ApiClient.ListEvents(r.Context())
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadEventsFailed)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, events)
}

func (h *HandlerService) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	event, err := h.ApiClient.GetEvent(r.Context(), id)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadEventsFailed)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, event)
}

func eventForm(r *http.Request) forms.EventForm {
	return forms.EventForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Location:    r.FormValue("location"),
	}
}

func (h *HandlerService) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := eventForm(r).Payload(h.Messages)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgCreateEventFailed)
		return
	}

	event, err := h.ApiClient.CreateEvent(r.Context(), h.Session.Token(), payload)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgCreateEventFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusCreated, h.Messages.Get(i18n.MsgEventCreated), event)
}

// HandleUpdateEvent replaces the event: all the create fields are required
func (h *HandlerService) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	payload, err := eventForm(r).Payload(h.Messages)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgUpdateEventFailed)
		return
	}

	event, err := h.ApiClient.UpdateEvent(r.Context(), h.Session.Token(), id, payload)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgUpdateEventFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgEventUpdated), event)
}

func (h *HandlerService) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if _, err := h.ApiClient.DeleteEvent(r.Context(), h.Session.Token(), id); err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgDeleteEventFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgEventDeleted), nil)
}

func (h *HandlerService) HandleApproveEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	event, err := h.ApiClient.ApproveEvent(r.Context(), h.Session.Token(), id)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgApproveEventFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgEventApproved), event)
}
