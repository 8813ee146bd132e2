package app

import (
	"github.com/eventboard/eventboard/pkg/calculator"
	"github.com/eventboard/eventboard/pkg/event"
	"github.com/eventboard/eventboard/pkg/organization"
	"github.com/eventboard/eventboard/pkg/validation"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Health
	r.HandleFunc("/health", deps.HealthHandler.Health).Methods("GET")

	// Calculator
	r.Handle("/calculate", validation.Handler[calculator.Request](deps.CalculatorHandler.Calculate, deps.CalculatorHandler.Rules()...)).Methods("POST")

	// Organizations
	r.HandleFunc("/api/organizations", deps.OrganizationHandler.ListOrganizations).Methods("GET")
	r.Handle("/api/organizations", validation.Handler[organization.OrganizationRequest](deps.OrganizationHandler.CreateOrganization)).Methods("POST")
	r.HandleFunc("/api/organizations/{orgId}", deps.OrganizationHandler.GetOrganization).Methods("GET")
	r.Handle("/api/organizations/{orgId}", validation.Handler[organization.OrganizationRequest](deps.OrganizationHandler.UpdateOrganization)).Methods("PUT")
	r.HandleFunc("/api/organizations/{orgId}", deps.OrganizationHandler.DeleteOrganization).Methods("DELETE")
	r.HandleFunc("/api/organizations/{orgId}/events", deps.EventHandler.ListOrganizationEvents).Methods("GET")

	// Events
	r.HandleFunc("/api/events", deps.EventHandler.ListEvents).Methods("GET")
	r.Handle("/api/events", validation.Handler[event.EventRequest](deps.EventHandler.CreateEvent)).Methods("POST")
	r.HandleFunc("/api/events/{eventId}", deps.EventHandler.GetEvent).Methods("GET")
	r.Handle("/api/events/{eventId}", validation.Handler[event.EventRequest](deps.EventHandler.UpdateEvent)).Methods("PUT")
	r.HandleFunc("/api/events/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")
}

// NewRouter builds the router with middlewares and routes.
func NewRouter(deps *Dependencies) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)
	return r
}
