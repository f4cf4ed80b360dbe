package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petly-community/petly/internal/ui/client"
	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/session"
)

func TestRespondWithFailure(t *testing.T) {
	h := &HandlerService{Messages: i18n.New("pt-BR")}
	loginErr := forms.LoginForm{}.Validate(h.Messages)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"validation", loginErr, http.StatusBadRequest, "validation_error", "Preencha todos os campos."},
		{"unauthorized", &client.APIError{Status: 401, Message: "Credenciais inválidas"},
			http.StatusUnauthorized, "authentication_error", "Credenciais inválidas"},
		{"forbidden", &client.APIError{Status: 403, Message: "Acesso negado"}, http.StatusForbidden, "authorization_error", "Acesso negado"},
		{"wrapped not found", fmt.Errorf("get pet: %w", &client.APIError{Status: 404, Message: "Pet não encontrado"}),
			http.StatusNotFound, "api_error", "Pet não encontrado"},
		{"api error without message", &client.APIError{Status: 500}, http.StatusInternalServerError, "api_error", "Falha ao remover pet."},
		{"connection", &client.ConnectionError{Method: "GET", Path: "/pets", Err: errors.New("refused")},
			http.StatusBadGateway, "connection_error", "Falha ao remover pet."},
		{"decode", &client.DecodeError{Status: 200, Err: client.ErrUnexpectedContentType},
			http.StatusBadGateway, "invalid_response", "Falha ao remover pet."},
		{"superseded", session.ErrSuperseded, http.StatusConflict, "request_superseded", "Esta solicitação foi substituída por uma mais recente."},
		{"storage", &session.StorageError{Op: "save", Err: errors.New("disk full")},
			http.StatusInternalServerError, "session_storage_error", "Não foi possível salvar sua sessão neste dispositivo."},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error", "Falha ao remover pet."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.respondWithFailure(rr, httptest.NewRequest(http.MethodDelete, "/ui-api/pets/1", nil), tt.err, i18n.MsgDeletePetFailed)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}

			var body struct {
				ErrorCode string `json:"error_code"`
				Message   string `json:"message"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON %s: %v", rr.Body.String(), err)
			}
			if body.ErrorCode != tt.wantCode || body.Message != tt.wantMessage {
				t.Errorf("got %s %q, want %s %q", body.ErrorCode, body.Message, tt.wantCode, tt.wantMessage)
			}
		})
	}
}
