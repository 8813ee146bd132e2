package event

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/eventboard/eventboard/pkg/validation"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// EventRequest is the body of create and update requests.
type EventRequest struct {
	EventName    string    `json:"eventName"`
	Description  string    `json:"description"`
	Detail       string    `json:"detail"`
	Organizer    string    `json:"organizer"`
	Organization string    `json:"organization"`
	Status       string    `json:"status"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
}

// EventDTO is the public shape of a stored event.
type EventDTO struct {
	ID           string    `json:"id"`
	EventName    string    `json:"eventName"`
	Description  string    `json:"description,omitempty"`
	Detail       string    `json:"detail"`
	Organizer    string    `json:"organizer"`
	Organization string    `json:"organization,omitempty"`
	Status       string    `json:"status"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// listFilters are the query parameters accepted by ListEvents, at most one per request.
var listFilters = []string{"organizer", "organization", "status", "eventName"}

type EventHandler struct {
	service Service
}

func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// CreateEvent godoc
// @Summary Create an event
// @Tags Event
// @Accept json
// @Produce json
// @Param event body EventRequest true "Event"
// @Success 201 {object} EventDTO
// @Failure 400 {object} apierror.ErrorBody
// @Router /api/events [post]
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new event")
	req, _ := validation.BodyFrom[EventRequest](r.Context())

	event, err := h.service.Create(r.Context(), requestToProps(req))
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusCreated, EventToDTO(event))
}

// GetEvent godoc
// @Summary Get an event by id
// @Tags Event
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} EventDTO
// @Failure 404 {object} apierror.ErrorBody
// @Router /api/events/{eventId} [get]
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Debugf("Getting event %s", eventId)

	event, err := h.service.Get(r.Context(), eventId)
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, EventToDTO(event))
}

// ListEvents godoc
// @Summary List events, optionally filtered by a single field
// @Tags Event
// @Produce json
// @Param organizer query string false "Organizer user id"
// @Param organization query string false "Organization id"
// @Param status query string false "Status"
// @Param eventName query string false "Event name"
// @Success 200 {array} EventDTO
// @Failure 400 {object} apierror.ErrorBody
// @Router /api/events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing events")
	query := r.URL.Query()

	var given []string
	for _, name := range listFilters {
		if query.Has(name) {
			given = append(given, name)
		}
	}
	if len(given) > 1 {
		apierror.Write(w, apierror.BadRequest("only one of "+strings.Join(listFilters, ", ")+" may be given"))
		return
	}

	var events []Event
	var err error
	if len(given) == 1 {
		events, err = h.service.ListBy(r.Context(), given[0], query.Get(given[0]))
	} else {
		events, err = h.service.List(r.Context())
	}
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, EventsToDTO(events))
}

// ListOrganizationEvents godoc
// @Summary List the events of an organization
// @Tags Event
// @Produce json
// @Param orgId path string true "Organization ID"
// @Success 200 {array} EventDTO
// @Router /api/organizations/{orgId}/events [get]
func (h *EventHandler) ListOrganizationEvents(w http.ResponseWriter, r *http.Request) {
	orgId := mux.Vars(r)["orgId"]
	log.Debugf("Listing events of organization %s", orgId)

	events, err := h.service.ListBy(r.Context(), "organization", orgId)
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, EventsToDTO(events))
}

// UpdateEvent godoc
// @Summary Replace the properties of an event
// @Tags Event
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param event body EventRequest true "Event"
// @Success 200 {object} EventDTO
// @Failure 400 {object} apierror.ErrorBody
// @Failure 404 {object} apierror.ErrorBody
// @Router /api/events/{eventId} [put]
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Debugf("Updating event %s", eventId)
	req, _ := validation.BodyFrom[EventRequest](r.Context())

	event, err := h.service.Update(r.Context(), eventId, requestToProps(req))
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, EventToDTO(event))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags Event
// @Param eventId path string true "Event ID"
// @Success 204 "No Content"
// @Failure 404 {object} apierror.ErrorBody
// @Router /api/events/{eventId} [delete]
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Debugf("Deleting event %s", eventId)

	if err := h.service.Delete(r.Context(), eventId); err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAPIError(err error) error {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return apierror.NotFound("Event not found").Wrap(err)
	case errors.Is(err, ErrUnknownField):
		return apierror.BadRequest(err.Error()).Wrap(err)
	default:
		return err
	}
}

func requestToProps(req EventRequest) Props {
	return Props{
		EventName:    req.EventName,
		Description:  req.Description,
		Detail:       req.Detail,
		Organizer:    req.Organizer,
		Organization: req.Organization,
		Status:       Status(req.Status),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
}

// EventToDTO applies the serialization transform: the identifier becomes "id" and the
// version is dropped.
func EventToDTO(event Event) EventDTO {
	return EventDTO{
		ID:           event.ID,
		EventName:    event.EventName,
		Description:  event.Description,
		Detail:       event.Detail,
		Organizer:    event.Organizer,
		Organization: event.Organization,
		Status:       string(event.Status),
		StartDate:    event.StartDate,
		EndDate:      event.EndDate,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}
}

func EventsToDTO(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, EventToDTO(event))
	}
	return dtos
}
