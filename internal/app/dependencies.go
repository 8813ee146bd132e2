package app

import (
	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/internal/event_bus"
	"github.com/eventboard/eventboard/internal/utils"
	"github.com/eventboard/eventboard/pkg/calculator"
	"github.com/eventboard/eventboard/pkg/event"
	"github.com/eventboard/eventboard/pkg/organization"
)

type Repositories struct {
	Events        event.Repository
	Organizations organization.Repository
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	EventService *event.ServiceImpl
	EventHandler *event.EventHandler

	OrganizationService *organization.ServiceImpl
	OrganizationHandler *organization.OrganizationHandler

	CalculatorHandler *calculator.Handler

	HealthHandler *HealthHandler

	unsubscribe []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repos Repositories, storage Pinger, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.EventService = event.NewEventService(repos.Events, deps.Clock, cfg.Events.StrictStatus)
	deps.EventHandler = event.NewEventHandler(deps.EventService)
	deps.unsubscribe = append(deps.unsubscribe, deps.EventService.SubscribeTo(deps.EventBus))

	deps.OrganizationService = organization.NewOrganizationService(repos.Organizations, deps.Clock, deps.EventBus)
	deps.OrganizationHandler = organization.NewOrganizationHandler(deps.OrganizationService)

	deps.CalculatorHandler = calculator.NewHandler(cfg.Calculator.StrictOperators)

	deps.HealthHandler = NewHealthHandler(storage, cfg.Storage.Driver)

	return deps
}

// Close detaches the bus subscriptions made by BuildDependencies.
func (d *Dependencies) Close() {
	for _, unsubscribe := range d.unsubscribe {
		unsubscribe()
	}
	d.unsubscribe = nil
}
