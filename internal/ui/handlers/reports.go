package handlers

import (
	"net/http"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/types"
)

// HandleCreateReport sends a report. Anonymous reports are allowed: the token is only sent when logged in
func (h *HandlerService) HandleCreateReport(w http.ResponseWriter, r *http.Request) {
	latitude, err := optionalFloat(r, "latitude")
	if err != nil {
		h.malformedField(w, r, "latitude", err)
		return
	}
	longitude, err := optionalFloat(r, "longitude")
	if err != nil {
		h.malformedField(w, r, "longitude", err)
		return
	}

	form := forms.ReportForm{
		Description: r.FormValue("description"),
		PhotoURL:    r.FormValue("photoUrl"),
		VideoURL:    r.FormValue("videoUrl"),
		Latitude:    latitude,
		Longitude:   longitude,
	}
	payload, err := form.Payload(h.Messages)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgCreateReportFailed)
		return
	}

	report, err := h.ApiClient.CreateReport(r.Context(), h.Session.Token(), payload)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgCreateReportFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusCreated, h.Messages.Get(i18n.MsgReportCreated), report)
}

func (h *HandlerService) HandleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.ApiClient.ListReports(r.Context(), h.Session.Token())
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadReportsFailed)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, reports)
}

func (h *HandlerService) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	report, err := h.ApiClient.GetReport(r.Context(), h.Session.Token(), id)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgLoadReportsFailed)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, report)
}

// HandleUpdateReport updates the status and/or the description of a report
func (h *HandlerService) HandleUpdateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	payload := types.UpdateReportPayload{
		Description: optionalString(r, "description"),
	}
	if raw := optionalString(r, "status"); raw != nil {
		status, err := forms.ParseReportStatus(h.Messages, *raw)
		if err != nil {
			h.respondWithFailure(w, r, err, i18n.MsgUpdateReportFailed)
			return
		}
		payload.Status = &status
	}

	report, err := h.ApiClient.UpdateReportStatus(r.Context(), h.Session.Token(), id, payload)
	if err != nil {
		h.respondWithFailure(w, r, err, i18n.MsgUpdateReportFailed)
		return
	}
	responses.RespondWithFeedback(w, http.StatusOK, h.Messages.Get(i18n.MsgReportUpdated), report)
}
