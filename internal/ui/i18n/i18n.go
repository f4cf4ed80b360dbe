// Package i18n holds the user-facing messages shown by the petly UI and CLI.
//
// Messages are keyed by their English text. pt-BR is the default locale; any locale that does not
// match a supported language falls back to it.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const DefaultLocale = "pt-BR"

// message keys
const (
	MsgServerError           = "Error communicating with the server"
	MsgUnexpectedContentType = "The API returned an invalid format (not JSON)."
	MsgInvalidResponse       = "The API returned an invalid response."
	MsgResponseTooLarge      = "The API response is too large."
	MsgConnectionFailed      = "Unable to connect. Please check your internet connection and try again."
	MsgInternalError         = "An error occurred. Please try again later."
	MsgRateLimited           = "Too many requests. Please try again in a few moments."
	MsgRequestTooLarge       = "The submitted data is too large."
	MsgSessionStorageFailed  = "Your session could not be saved on this device."
	MsgRequestSuperseded     = "This request was replaced by a newer one."

	MsgFillAllFields       = "Please fill in all fields."
	MsgPasswordsDoNotMatch = "Passwords do not match."
	MsgPasswordTooShort    = "Password must be at least 6 characters."
	MsgInvalidEmail        = "Please enter a valid email address."
	MsgInvalidStatus       = "Invalid status."
	MsgInvalidRole         = "Invalid role."
	MsgInvalidID           = "Invalid identifier."
	MsgMalformedBody       = "The submitted data is invalid."
	MsgLoginRequired       = "Please log in to continue."
	MsgAccessDenied        = "You don't have permission to access this resource."
	MsgCrossOriginRejected = "This request must be sent from the petly app."

	MsgLoginFailed    = "Login failed. Please check your email and password and try again."
	MsgRegisterFailed = "Registration failed. Please try again."

	MsgLoadPetsFailed      = "Could not load the pets."
	MsgLoadPetFailed       = "Could not load the pet details."
	MsgLoadEventsFailed    = "Could not load the events."
	MsgLoadAdoptionsFailed = "Could not load the adoption requests."
	MsgLoadReportsFailed   = "Could not load the reports."
	MsgLoadUsersFailed     = "Could not load the users."

	MsgCreatePetFailed      = "Could not register the pet."
	MsgUpdatePetFailed      = "Failed to update pet."
	MsgDeletePetFailed      = "Failed to remove pet."
	MsgCreateEventFailed    = "Failed to create event."
	MsgUpdateEventFailed    = "Failed to update event."
	MsgDeleteEventFailed    = "Failed to remove event."
	MsgApproveEventFailed   = "Failed to approve event."
	MsgCreateAdoptionFailed = "Failed to request adoption."
	MsgUpdateAdoptionFailed = "Failed to update request."
	MsgDeleteAdoptionFailed = "Failed to remove request."
	MsgCreateReportFailed   = "Error sending report. Please try again."
	MsgUpdateReportFailed   = "Failed to update report."
	MsgUpdateUserFailed     = "Failed to update user."
	MsgDeleteUserFailed     = "Failed to remove user."

	MsgPetCreated        = "Pet registered!"
	MsgPetUpdated        = "Pet status updated!"
	MsgPetDeleted        = "Pet removed."
	MsgAdoptionRequested = "Adoption request sent!"
	MsgAdoptionUpdated   = "Request updated."
	MsgAdoptionDeleted   = "Request removed."
	MsgEventCreated      = "Event submitted!"
	MsgEventUpdated      = "Event updated."
	MsgEventDeleted      = "Event removed."
	MsgEventApproved     = "Event approved!"
	MsgReportCreated     = "Report sent!"
	MsgReportUpdated     = "Report updated."
	MsgUserUpdated       = "User updated."
	MsgUserDeleted       = "User removed."
	MsgLoggedOut         = "You have been logged out."
)

var ptBR = map[string]string{
	MsgServerError:           "Erro ao se comunicar com o servidor",
	MsgUnexpectedContentType: "A API retornou um formato inválido (não JSON).",
	MsgInvalidResponse:       "A API retornou uma resposta inválida.",
	MsgResponseTooLarge:      "A resposta da API é grande demais.",
	MsgConnectionFailed:      "Não foi possível conectar. Verifique sua conexão e tente novamente.",
	MsgInternalError:         "Ocorreu um erro. Tente novamente mais tarde.",
	MsgRateLimited:           "Muitas requisições. Tente novamente em alguns instantes.",
	MsgRequestTooLarge:       "Os dados enviados são grandes demais.",
	MsgSessionStorageFailed:  "Não foi possível salvar sua sessão neste dispositivo.",
	MsgRequestSuperseded:     "Esta solicitação foi substituída por uma mais recente.",

	MsgFillAllFields:       "Preencha todos os campos.",
	MsgPasswordsDoNotMatch: "As senhas não coincidem.",
	MsgPasswordTooShort:    "A senha deve ter no mínimo 6 caracteres.",
	MsgInvalidEmail:        "Informe um email válido.",
	MsgInvalidStatus:       "Status inválido.",
	MsgInvalidRole:         "Perfil inválido.",
	MsgInvalidID:           "Identificador inválido.",
	MsgMalformedBody:       "Os dados enviados são inválidos.",
	MsgLoginRequired:       "Faça login para continuar.",
	MsgAccessDenied:        "Você não tem permissão para acessar este recurso.",
	MsgCrossOriginRejected: "Esta solicitação deve ser enviada pelo app petly.",

	MsgLoginFailed:    "Falha no login. Verifique seu email e senha e tente novamente.",
	MsgRegisterFailed: "Falha no cadastro. Tente novamente.",

	MsgLoadPetsFailed:      "Não foi possível carregar os pets.",
	MsgLoadPetFailed:       "Não foi possível carregar os dados do pet.",
	MsgLoadEventsFailed:    "Não foi possível carregar os eventos.",
	MsgLoadAdoptionsFailed: "Não foi possível carregar as solicitações.",
	MsgLoadReportsFailed:   "Não foi possível carregar as denúncias.",
	MsgLoadUsersFailed:     "Não foi possível carregar usuários.",

	MsgCreatePetFailed:      "Não foi possível cadastrar o pet.",
	MsgUpdatePetFailed:      "Falha ao atualizar pet.",
	MsgDeletePetFailed:      "Falha ao remover pet.",
	MsgCreateEventFailed:    "Falha ao criar evento.",
	MsgUpdateEventFailed:    "Falha ao atualizar evento.",
	MsgDeleteEventFailed:    "Falha ao remover evento.",
	MsgApproveEventFailed:   "Falha ao aprovar evento.",
	MsgCreateAdoptionFailed: "Falha ao solicitar adoção.",
	MsgUpdateAdoptionFailed: "Falha ao atualizar solicitação.",
	MsgDeleteAdoptionFailed: "Falha ao remover solicitação.",
	MsgCreateReportFailed:   "Erro ao enviar denúncia. Tente novamente.",
	MsgUpdateReportFailed:   "Falha ao atualizar denúncia.",
	MsgUpdateUserFailed:     "Falha ao atualizar usuário.",
	MsgDeleteUserFailed:     "Falha ao remover usuário.",

	MsgPetCreated:        "Pet cadastrado!",
	MsgPetUpdated:        "Status do pet atualizado!",
	MsgPetDeleted:        "Pet removido.",
	MsgAdoptionRequested: "Solicitação de adoção enviada!",
	MsgAdoptionUpdated:   "Solicitação atualizada.",
	MsgAdoptionDeleted:   "Solicitação removida.",
	MsgEventCreated:      "Evento enviado!",
	MsgEventUpdated:      "Evento atualizado.",
	MsgEventDeleted:      "Evento removido.",
	MsgEventApproved:     "Evento aprovado!",
	MsgReportCreated:     "Denúncia enviada!",
	MsgReportUpdated:     "Denúncia atualizada.",
	MsgUserUpdated:       "Usuário atualizado.",
	MsgUserDeleted:       "Usuário removido.",
	MsgLoggedOut:         "Você saiu da sua conta.",
}

// pet status labels, keyed by backend status
var statusLabels = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		"AVAILABLE": "Disponível",
		"ADOPTED":   "Adotado",
		"LOST":      "Perdido",
		"FOUND":     "Encontrado",
	},
	language.English: {
		"AVAILABLE": "Available",
		"ADOPTED":   "Adopted",
		"LOST":      "Lost",
		"FOUND":     "Found",
	},
}

var (
	supported = []language.Tag{language.BrazilianPortuguese, language.English}
	matcher   = language.NewMatcher(supported)
	messages  = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.BrazilianPortuguese))
	for key, msg := range ptBR {
		if err := b.SetString(language.BrazilianPortuguese, key, msg); err != nil {
			panic("i18n: " + err.Error())
		}
		// english messages are the keys themselves
		if err := b.SetString(language.English, key, key); err != nil {
			panic("i18n: " + err.Error())
		}
	}
	return b
}

// Messages translates message keys for a single locale
type Messages struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns the messages for the supported language closest to locale (e.g "pt-BR", "en-GB")
func New(locale string) *Messages {
	_, index, _ := matcher.Match(language.Make(locale))
	tag := supported[index]
	return &Messages{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Tag returns the resolved language
func (m *Messages) Tag() language.Tag {
	return m.tag
}

// Get returns the translation of key. Unknown keys are returned unchanged
func (m *Messages) Get(key string) string {
	if m == nil {
		return New(DefaultLocale).Get(key)
	}
	return m.printer.Sprintf(key)
}

// StatusLabel returns the display label for a pet status.
// Empty statuses render as "-" and unknown statuses are returned unchanged
func (m *Messages) StatusLabel(status string) string {
	if status == "" {
		return "-"
	}
	tag := language.BrazilianPortuguese
	if m != nil {
		tag = m.tag
	}
	if label, ok := statusLabels[tag][status]; ok {
		return label
	}
	return status
}
