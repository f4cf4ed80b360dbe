package handlers

import (
	"log/slog"
	"net/http"

	"github.com/petly-community/petly/internal/logger"
	"github.com/petly-community/petly/internal/ui/client"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/session"
	"github.com/petly-community/petly/internal/ui/types"
)

// DashboardLatestEvents is the number of events shown on the dashboard
const DashboardLatestEvents = 4

// DashboardResponse holds every dashboard section.
// A section that could not be loaded is left empty and its message is reported in Errors, keyed by section name
type DashboardResponse struct {
	User      *session.User           `json:"user"`
	MyPets    []types.Pet             `json:"my_pets"`
	Stats     types.PetStats          `json:"stats"`
	Events    []types.Event           `json:"events"`
	Adoptions []types.AdoptionRequest `json:"adoptions"`
	Reports   []types.Report          `json:"reports"`
	Users     []types.User            `json:"users,omitempty"`
	Errors    map[string]string       `json:"errors,omitempty"`
}

func (h *HandlerService) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())
	ctx := r.Context()

	snapshot := h.Session.Snapshot()
	res := DashboardResponse{
		User:      snapshot.User,
		MyPets:    []types.Pet{},
		Events:    []types.Event{},
		Adoptions: []types.AdoptionRequest{},
		Reports:   []types.Report{},
	}

	sectionFailed := func(section string, err error, fallbackKey string) {
		reqLogger.Warn("dashboard section failed",
			slog.String("component", "handlers.HandleDashboard"),
			slog.String("section", section),
			slog.String("error", err.Error()),
		)
		if res.Errors == nil {
			res.Errors = make(map[string]string)
		}
		res.Errors[section] = client.UserMessage(err, h.Messages.Get(fallbackKey))
	}

	if pets, err := h.ApiClient.ListPets(ctx); err != nil {
		sectionFailed("pets", err, i18n.MsgLoadPetsFailed)
	} else {
		res.Stats = types.ComputePetStats(pets)
		if snapshot.User != nil {
			res.MyPets = types.OwnedBy(pets, snapshot.User.ID)
		}
	}

	if events, err := h.ApiClient.ListEvents(ctx); err != nil {
		sectionFailed("events", err, i18n.MsgLoadEventsFailed)
	} else {
		res.Events = types.LatestEvents(events, DashboardLatestEvents)
	}

	if adoptions, err := h.ApiClient.ListAdoptions(ctx, snapshot.Token); err != nil {
		sectionFailed("adoptions", err, i18n.MsgLoadAdoptionsFailed)
	} else {
		res.Adoptions = adoptions
	}

	if reports, err := h.ApiClient.ListReports(ctx, snapshot.Token); err != nil {
		sectionFailed("reports", err, i18n.MsgLoadReportsFailed)
	} else {
		res.Reports = reports
	}

	// the user list is only requested for admins
	if h.Session.IsAdmin() {
		if users, err := h.ApiClient.ListUsers(ctx, snapshot.Token); err != nil {
			sectionFailed("users", err, i18n.MsgLoadUsersFailed)
		} else {
			res.Users = users
		}
	}

	responses.RespondWithJSON(w, http.StatusOK, res)
}
