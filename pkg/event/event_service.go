package event

import (
	"context"
	"fmt"

	"github.com/eventboard/eventboard/internal/event_bus"
	"github.com/eventboard/eventboard/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, props Props) (Event, error)
	Get(ctx context.Context, id string) (Event, error)
	List(ctx context.Context) ([]Event, error)
	ListBy(ctx context.Context, field string, value string) ([]Event, error)
	Update(ctx context.Context, id string, props Props) (Event, error)
	Delete(ctx context.Context, id string) error
	DetachOrganization(ctx context.Context, organizationId string) (int, error)
}

type ServiceImpl struct {
	repo         Repository
	clock        utils.Clock
	strictStatus bool
}

func NewEventService(repo Repository, clock utils.Clock, strictStatus bool) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock, strictStatus: strictStatus}
}

func (s *ServiceImpl) Create(ctx context.Context, props Props) (Event, error) {
	event := Build(props)
	if err := event.Validate(s.strictStatus); err != nil {
		return Event{}, err
	}

	now := s.clock.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	return s.repo.Create(ctx, event)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Event, error) {
	return s.repo.FindById(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context) ([]Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImpl) ListBy(ctx context.Context, field string, value string) ([]Event, error) {
	return s.repo.FindByField(ctx, field, value)
}

// Update replaces the user supplied properties of an existing event.
func (s *ServiceImpl) Update(ctx context.Context, id string, props Props) (Event, error) {
	event, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Event{}, err
	}

	event.apply(props)
	if err := event.Validate(s.strictStatus); err != nil {
		return Event{}, err
	}
	event.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, event)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}
	return nil
}

// DetachOrganization clears the organization of every event referencing organizationId
// and returns how many events were changed. Events are saved without re-validation, the
// organization is optional.
func (s *ServiceImpl) DetachOrganization(ctx context.Context, organizationId string) (int, error) {
	events, err := s.repo.FindByField(ctx, "organization", organizationId)
	if err != nil {
		return 0, err
	}

	detached := 0
	for _, event := range events {
		event.Organization = ""
		event.UpdatedAt = s.clock.Now()
		if _, err := s.repo.Update(ctx, event); err != nil {
			return detached, fmt.Errorf("could not detach event %s: %w", event.ID, err)
		}
		detached++
	}
	if detached > 0 {
		log.Infof("Detached %d event(s) from deleted organization %s", detached, organizationId)
	}
	return detached, nil
}

// SubscribeTo detaches events whenever an organization is deleted.
func (s *ServiceImpl) SubscribeTo(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.OrganizationDeletedType,
		func(e event_bus.EventT[event_bus.OrganizationDeleted]) error {
			_, err := s.DetachOrganization(e.Context(), e.Data.ID)
			return err
		})
}
