package types

// =============================================================================
// ENUMS
// =============================================================================

type Role string

const (
	RoleUser  Role = "USER"
	RoleOng   Role = "ONG"
	RoleVet   Role = "VET"
	RoleAdmin Role = "ADMIN"
)

var ValidRoles = map[Role]bool{
	RoleUser:  true,
	RoleOng:   true,
	RoleVet:   true,
	RoleAdmin: true,
}

type PetStatus string

const (
	PetAvailable PetStatus = "AVAILABLE"
	PetAdopted   PetStatus = "ADOPTED"
	PetLost      PetStatus = "LOST"
	PetFound     PetStatus = "FOUND"
)

var ValidPetStatuses = map[PetStatus]bool{
	PetAvailable: true,
	PetAdopted:   true,
	PetLost:      true,
	PetFound:     true,
}

// RequestStatus is used by adoption requests
type RequestStatus string

// EventStatus is the moderation state of an event
type EventStatus string

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

var ValidRequestStatuses = map[RequestStatus]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

type ReportStatus string

const (
	ReportOpen       ReportStatus = "OPEN"
	ReportInProgress ReportStatus = "IN_PROGRESS"
	ReportResolved   ReportStatus = "RESOLVED"
)

var ValidReportStatuses = map[ReportStatus]bool{
	ReportOpen:       true,
	ReportInProgress: true,
	ReportResolved:   true,
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// AuthResponse is returned by the login and register endpoints
type AuthResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// =============================================================================
// RESOURCES
// =============================================================================

type User struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Reputation *int    `json:"reputation,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

// UserSummary is the subset of a user embedded in pets and events
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type Pet struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Species     string       `json:"species"`
	Breed       *string      `json:"breed,omitempty"`
	Age         *int         `json:"age,omitempty"`
	Sex         *string      `json:"sex,omitempty"`
	Description *string      `json:"description,omitempty"`
	PhotoURL    *string      `json:"photoUrl,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Status      PetStatus    `json:"status"`
	OwnerID     int64        `json:"ownerId"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
	Owner       *UserSummary `json:"owner,omitempty"`
}

type AdoptionRequest struct {
	ID        int64         `json:"id"`
	Status    RequestStatus `json:"status"`
	CreatedAt string        `json:"createdAt,omitempty"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
	PetID     int64         `json:"petId"`
	UserID    int64         `json:"userId"`
	User      *User         `json:"user,omitempty"`
	Pet       *Pet          `json:"pet,omitempty"`
}

type Event struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        string       `json:"date"`
	Location    string       `json:"location"`
	Status      EventStatus  `json:"status"`
	OrganizerID int64        `json:"organizerId"`
	Organizer   *UserSummary `json:"organizer,omitempty"`
}

type Report struct {
	ID          int64        `json:"id"`
	Description string       `json:"description"`
	PhotoURL    *string      `json:"photoUrl,omitempty"`
	VideoURL    *string      `json:"videoUrl,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Status      ReportStatus `json:"status"`
	ReporterID  *int64       `json:"reporterId,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
}

// MessageResponse is returned by the delete endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// PAYLOADS
// =============================================================================

type CreatePetPayload struct {
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	Age         *int      `json:"age,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      PetStatus `json:"status"`
	Sex         string    `json:"sex,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
}

// UpdatePetPayload is a partial update: only the non-nil fields are sent
type UpdatePetPayload struct {
	Name        *string    `json:"name,omitempty"`
	Species     *string    `json:"species,omitempty"`
	Breed       *string    `json:"breed,omitempty"`
	Age         *int       `json:"age,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *PetStatus `json:"status,omitempty"`
	Sex         *string    `json:"sex,omitempty"`
	PhotoURL    *string    `json:"photoUrl,omitempty"`
}

type CreateEventPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

type CreateAdoptionPayload struct {
	PetID int64 `json:"petId"`
}

type UpdateAdoptionPayload struct {
	Status RequestStatus `json:"status"`
}

type CreateReportPayload struct {
	Description string   `json:"description"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
	VideoURL    string   `json:"videoUrl,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

type UpdateReportPayload struct {
	Status      *ReportStatus `json:"status,omitempty"`
	Description *string       `json:"description,omitempty"`
}

type UpdateUserPayload struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Role    *Role   `json:"role,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}
