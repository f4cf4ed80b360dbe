// Package forms validates user input locally before any call is made to the API.
package forms

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/types"
)

const MinPasswordLength = 6

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists the fields that failed validation. UserError returns the first message
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) UserError() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

// validator collects field errors, it is not safe for concurrent use
type validator struct {
	messages *i18n.Messages
	errs     []FieldError
}

func newValidator(messages *i18n.Messages) *validator {
	return &validator{messages: messages}
}

func (v *validator) add(field, key string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: v.messages.Get(key)})
}

// required fails every blank field with the same "fill in all fields" message
func (v *validator) required(fields map[string]string, order ...string) *validator {
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			v.add(name, i18n.MsgFillAllFields)
		}
	}
	return v
}

func (v *validator) email(field, value string) *validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, i18n.MsgInvalidEmail)
	}
	return v
}

func (v *validator) custom(field string, failed bool, key string) *validator {
	if failed {
		v.add(field, key)
	}
	return v
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.errs}
}

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate(messages *i18n.Messages) error {
	return newValidator(messages).
		required(map[string]string{"email": f.Email, "password": f.Password}, "email", "password").
		err()
}

type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the fields are present, the email is well formed, the password is long enough and has been confirmed
func (f RegisterForm) Validate(messages *i18n.Messages) error {
	v := newValidator(messages).required(map[string]string{
		"name":            f.Name,
		"email":           f.Email,
		"password":        f.Password,
		"confirmPassword": f.ConfirmPassword,
	}, "name", "email", "password", "confirmPassword")
	if len(v.errs) > 0 {
		return v.err()
	}

	return v.
		email("email", strings.TrimSpace(f.Email)).
		custom("password", utf8.RuneCountInString(f.Password) < MinPasswordLength, i18n.MsgPasswordTooShort).
		custom("confirmPassword", f.Password != f.ConfirmPassword, i18n.MsgPasswordsDoNotMatch).
		err()
}

type PetForm struct {
	Name        string
	Species     string
	Breed       string
	Age         *int
	Description string
	Status      string
	Sex         string
	PhotoURL    string
}

// Payload validates the form and returns the create payload. An empty status defaults to AVAILABLE
func (f PetForm) Payload(messages *i18n.Messages) (types.CreatePetPayload, error) {
	status := types.PetStatus(strings.ToUpper(strings.TrimSpace(f.Status)))
	if status == "" {
		status = types.PetAvailable
	}

	err := newValidator(messages).
		required(map[string]string{"name": f.Name, "species": f.Species}, "name", "species").
		custom("status", !types.ValidPetStatuses[status], i18n.MsgInvalidStatus).
		custom("age", f.Age != nil && *f.Age < 0, i18n.MsgMalformedBody).
		err()
	if err != nil {
		return types.CreatePetPayload{}, err
	}

	return types.CreatePetPayload{
		Name:        strings.TrimSpace(f.Name),
		Species:     strings.TrimSpace(f.Species),
		Breed:       strings.TrimSpace(f.Breed),
		Age:         f.Age,
		Description: strings.TrimSpace(f.Description),
		Status:      status,
		Sex:         strings.TrimSpace(f.Sex),
		PhotoURL:    strings.TrimSpace(f.PhotoURL),
	}, nil
}

type EventForm struct {
	Title       string
	Description string
	Date        string
	Location    string
}

func (f EventForm) Payload(messages *i18n.Messages) (types.CreateEventPayload, error) {
	err := newValidator(messages).
		required(map[string]string{"title": f.Title, "date": f.Date, "location": f.Location}, "title", "date", "location").
		err()
	if err != nil {
		return types.CreateEventPayload{}, err
	}
	return types.CreateEventPayload{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Date:        strings.TrimSpace(f.Date),
		Location:    strings.TrimSpace(f.Location),
	}, nil
}

type ReportForm struct {
	Description string
	PhotoURL    string
	VideoURL    string
	Latitude    *float64
	Longitude   *float64
}

func (f ReportForm) Payload(messages *i18n.Messages) (types.CreateReportPayload, error) {
	err := newValidator(messages).
		required(map[string]string{"description": f.Description}, "description").
		err()
	if err != nil {
		return types.CreateReportPayload{}, err
	}
	return types.CreateReportPayload{
		Description: strings.TrimSpace(f.Description),
		PhotoURL:    strings.TrimSpace(f.PhotoURL),
		VideoURL:    strings.TrimSpace(f.VideoURL),
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
	}, nil
}

// ParseRequestStatus validates an adoption request status (case insensitive)
func ParseRequestStatus(messages *i18n.Messages, value string) (types.RequestStatus, error) {
	status := types.RequestStatus(strings.ToUpper(strings.TrimSpace(value)))
	err := newValidator(messages).custom("status", !types.ValidRequestStatuses[status], i18n.MsgInvalidStatus).err()
	return status, err
}

func ParseReportStatus(messages *i18n.Messages, value string) (types.ReportStatus, error) {
	status := types.ReportStatus(strings.ToUpper(strings.TrimSpace(value)))
	err := newValidator(messages).custom("status", !types.ValidReportStatuses[status], i18n.MsgInvalidStatus).err()
	return status, err
}

// ParsePetStatus accepts an empty value (no filter)
func ParsePetStatus(messages *i18n.Messages, value string) (types.PetStatus, error) {
	status := types.PetStatus(strings.ToUpper(strings.TrimSpace(value)))
	if status == "" {
		return "", nil
	}
	err := newValidator(messages).custom("status", !types.ValidPetStatuses[status], i18n.MsgInvalidStatus).err()
	return status, err
}

func ParseRole(messages *i18n.Messages, value string) (types.Role, error) {
	role := types.Role(strings.ToUpper(strings.TrimSpace(value)))
	err := newValidator(messages).custom("role", !types.ValidRoles[role], i18n.MsgInvalidRole).err()
	return role, err
}
