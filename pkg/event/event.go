package event

import (
	"strings"
	"time"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/eventboard/eventboard/pkg/validation"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusDraft, StatusOpen, StatusClosed, StatusCompleted}

func (s Status) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Event is a stored event. ID and Version are internal and never serialized as such.
// The json tags only name fields in validation errors.
type Event struct {
	ID           string    `json:"-"`
	EventName    string    `json:"eventName" validate:"required,min=10,max=80"`
	Description  string    `json:"description" validate:"max=150"`
	Detail       string    `json:"detail" validate:"required,max=1000"`
	Organizer    string    `json:"organizer" validate:"required"`
	Organization string    `json:"organization"`
	Status       Status    `json:"status" validate:"required"`
	StartDate    time.Time `json:"startDate" validate:"required"`
	EndDate      time.Time `json:"endDate" validate:"required"`
	Version      int       `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Props are the user supplied properties of an event.
type Props struct {
	EventName    string
	Description  string
	Detail       string
	Organizer    string
	Organization string
	Status       Status
	StartDate    time.Time
	EndDate      time.Time
}

// Build returns an unsaved event. Nothing is checked here, see Validate.
func Build(props Props) Event {
	e := Event{}
	e.apply(props)
	return e
}

func (e *Event) apply(props Props) {
	e.EventName = props.EventName
	e.Description = props.Description
	e.Detail = props.Detail
	e.Organizer = props.Organizer
	e.Organization = props.Organization
	e.Status = props.Status
	e.StartDate = normalizeDate(props.StartDate)
	e.EndDate = normalizeDate(props.EndDate)
}

// normalizeDate brings a user supplied date to the UTC millisecond precision both
// storage backends keep, so responses match what a later read returns.
func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Millisecond)
}

// Validate checks every field constraint and reports all failures at once.
// With strictStatus the status must also be one of Statuses.
func (e Event) Validate(strictStatus bool) error {
	fieldErrs := validation.Struct(e)
	if strictStatus && e.Status != "" && !e.Status.Valid() {
		names := make([]string, 0, len(Statuses))
		for _, s := range Statuses {
			names = append(names, string(s))
		}
		fieldErrs = append(fieldErrs, apierror.FieldError{
			Message: "status must be one of: " + strings.Join(names, ", "),
			Field:   "status",
		})
	}
	if len(fieldErrs) > 0 {
		return apierror.RequestValidation(fieldErrs)
	}
	return nil
}
