package application

import (
	"time"

	"github.com/campushq/placetrack/core"
)

// Statuses. An application starts In-Progress; Offer and Rejected are
// terminal — the record is frozen once it reaches either.
const (
	StatusInProgress = "In-Progress"
	StatusOffer      = "Offer"
	StatusRejected   = "Rejected"
)

var Statuses = []string{StatusInProgress, StatusOffer, StatusRejected}

// Page sizes
const (
	DefaultPageSize = 5
	MaxPageSize     = 50
	AdminPageSize   = 10
)

func IsTerminal(status string) bool {
	return status == StatusOffer || status == StatusRejected
}

type Application struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"userId"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	Package      float64   `json:"package"`
	Rounds       []string  `json:"rounds"`
	CurrentRound string    `json:"currentRound"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt"` // UTC
}

// Owner identifies the student a record belongs to on admin views.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// AdminApplication is an Application joined with its owner's identity.
type AdminApplication struct {
	Application
	Owner Owner `json:"owner"`
}

// NewApplication contains information needed to record a new placement attempt.
type NewApplication struct {
	Company      string   `json:"company" validate:"required"`
	Role         string   `json:"role" validate:"required"`
	Package      float64  `json:"package" validate:"gte=0"`
	Rounds       []string `json:"rounds" validate:"required,min=1,dive,required"`
	CurrentRound string   `json:"currentRound" validate:"required"`
	Status       string   `json:"status" validate:"omitempty,appstatus"`
}

func (na *NewApplication) Validate() error {
	na.Company = core.CleanString(na.Company)
	na.Role = core.CleanString(na.Role)
	na.CurrentRound = core.CleanString(na.CurrentRound)
	for i, r := range na.Rounds {
		na.Rounds[i] = core.CleanString(r)
	}
	if na.Status == "" {
		na.Status = StatusInProgress
	}
	return core.Validate.Struct(na)
}

// UpdateApplicationStatus defines the narrow inline update: status is
// required; CurrentRound is only touched when explicitly supplied.
type UpdateApplicationStatus struct {
	Status       string  `json:"status" validate:"required,appstatus"`
	CurrentRound *string `json:"currentRound" validate:"omitempty"`
}

func (us *UpdateApplicationStatus) Validate() error {
	if us.CurrentRound != nil {
		cleaned := core.CleanString(*us.CurrentRound)
		us.CurrentRound = &cleaned
	}
	return core.Validate.Struct(us)
}

// UpdateApplication replaces company, role, package, rounds and status
// unconditionally; CurrentRound follows the same non-clearing contract as
// UpdateApplicationStatus.
type UpdateApplication struct {
	Company      string   `json:"company" validate:"required,min=2,max=100"`
	Role         string   `json:"role" validate:"required,min=2,max=100"`
	Package      float64  `json:"package" validate:"gte=0"`
	Rounds       []string `json:"rounds" validate:"required,min=1,dive,required"`
	CurrentRound *string  `json:"currentRound" validate:"omitempty"`
	Status       string   `json:"status" validate:"required,appstatus"`
}

func (ua *UpdateApplication) Validate() error {
	ua.Company = core.CleanString(ua.Company)
	ua.Role = core.CleanString(ua.Role)
	for i, r := range ua.Rounds {
		ua.Rounds[i] = core.CleanString(r)
	}
	if ua.CurrentRound != nil {
		cleaned := core.CleanString(*ua.CurrentRound)
		ua.CurrentRound = &cleaned
	}
	return core.Validate.Struct(ua)
}

// QueryFilter applies AND across its fields. Search does a case-insensitive
// substring match on Company or Role — plus CurrentRound when SearchRounds is
// set (student listing), plus OwnerID ∈ SearchOwnerIDs when provided (admin
// listing, owners resolved from an email match beforehand).
type QueryFilter struct {
	OwnerID        string
	Status         string
	Search         string
	SearchRounds   bool
	SearchOwnerIDs []string
	Offset         int
	Limit          int
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type Page struct {
	Items []Application
	Pagination
}

type AdminPage struct {
	Items []AdminApplication
	Pagination
}
