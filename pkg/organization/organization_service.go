package organization

import (
	"context"
	"errors"

	"github.com/eventboard/eventboard/internal/event_bus"
	"github.com/eventboard/eventboard/internal/utils"
	"github.com/eventboard/eventboard/pkg/apierror"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, props Props) (Organization, error)
	Get(ctx context.Context, id string) (Organization, error)
	List(ctx context.Context) ([]Organization, error)
	ListBy(ctx context.Context, field string, value string) ([]Organization, error)
	Update(ctx context.Context, id string, props Props) (Organization, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
	bus   *event_bus.EventBus
}

func NewOrganizationService(repo Repository, clock utils.Clock, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock, bus: bus}
}

func (s *ServiceImpl) Create(ctx context.Context, props Props) (Organization, error) {
	org := Build(props)
	if err := org.Validate(); err != nil {
		return Organization{}, err
	}

	now := s.clock.Now()
	org.CreatedAt = now
	org.UpdatedAt = now
	created, err := s.repo.Create(ctx, org)
	return created, nameTakenAsValidation(err)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Organization, error) {
	return s.repo.FindById(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context) ([]Organization, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImpl) ListBy(ctx context.Context, field string, value string) ([]Organization, error) {
	return s.repo.FindByField(ctx, field, value)
}

func (s *ServiceImpl) Update(ctx context.Context, id string, props Props) (Organization, error) {
	org, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Organization{}, err
	}

	org.apply(props)
	if err := org.Validate(); err != nil {
		return Organization{}, err
	}
	org.UpdatedAt = s.clock.Now()
	updated, err := s.repo.Update(ctx, org)
	return updated, nameTakenAsValidation(err)
}

// Delete removes the organization and announces it on the bus. A failing subscriber is
// logged only, the organization is already gone at that point.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	org, err := s.repo.FindById(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrganizationNotFound
	}

	if s.bus != nil {
		payload := event_bus.OrganizationDeleted{ID: org.ID, OrgName: org.OrgName}
		if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.OrganizationDeletedType, payload)); err != nil {
			log.Errorf("Organization %s deleted, but not all subscribers handled it: %v", id, err)
		}
	}
	return nil
}

func nameTakenAsValidation(err error) error {
	if errors.Is(err, ErrOrgNameTaken) {
		return apierror.RequestValidation([]apierror.FieldError{
			{Message: "orgName is already taken", Field: "orgName"},
		}).Wrap(err)
	}
	return err
}
