package organization

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventboard/eventboard/internal/event_bus"
	"github.com/eventboard/eventboard/internal/utils"
	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var orgRepoStub = NewRepositoryStub()

var clock = &utils.FixedClock{}

var bus *event_bus.EventBus

var service *ServiceImpl

func setup(t *testing.T) func() {
	clock.Set(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	bus = event_bus.NewEventBus()
	service = NewOrganizationService(orgRepoStub, clock, bus)
	return func() {
		t.Log("Teardown after test")
		orgRepoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should store a valid organization with timestamps", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, validProps())

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Acme Meetups", created.OrgName)
		assert.True(t, created.Active())
		assert.Equal(t, clock.Now(), created.CreatedAt)
		assert.Equal(t, clock.Now(), created.UpdatedAt)
	})

	t.Run("should report a duplicate name on the orgName field", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, validProps())
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, validProps())

		// then
		assert.ErrorIs(t, err, ErrOrgNameTaken)
		fields := fieldsOf(t, err)
		assert.Equal(t, "orgName is already taken", fields["orgName"])
	})

	t.Run("should not store an organization without isActive", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		props := validProps()
		props.IsActive = nil

		// when
		_, err := service.Create(ctx, props)

		// then
		assert.True(t, errors.Is(err, apierror.RequestValidation(nil)))
		all, _ := service.List(ctx)
		assert.Empty(t, all)
	})
}

func TestServiceImpl_ListBy(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	mine := validProps()
	other := validProps()
	other.OrgName = "Other Org"
	other.Owner = "user-2"
	_, _ = service.Create(ctx, mine)
	_, _ = service.Create(ctx, other)

	// when
	orgs, err := service.ListBy(ctx, "owner", "user-2")

	// then
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Other Org", orgs[0].OrgName)

	_, err = service.ListBy(ctx, "isActive", "true")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should deactivate and bump updatedAt and version", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())
		clock.Advance(time.Minute)
		props := validProps()
		props.IsActive = boolPtr(false)

		// when
		updated, err := service.Update(ctx, created.ID, props)

		// then
		require.NoError(t, err)
		assert.False(t, updated.Active())
		assert.Equal(t, 1, updated.Version)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, created.CreatedAt.Add(time.Minute), updated.UpdatedAt)
	})

	t.Run("should keep its own name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())

		// when
		_, err := service.Update(ctx, created.ID, validProps())

		// then
		assert.NoError(t, err)
	})

	t.Run("should not take the name of another organization", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, _ = service.Create(ctx, validProps())
		props := validProps()
		props.OrgName = "Other Org"
		other, _ := service.Create(ctx, props)

		// when
		_, err := service.Update(ctx, other.ID, validProps())

		// then
		assert.ErrorIs(t, err, ErrOrgNameTaken)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Update(ctx, "42", validProps())

		// then
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should remove the organization and publish its deletion", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())
		var published []event_bus.OrganizationDeleted
		event_bus.SubscribeTyped(bus, event_bus.OrganizationDeletedType,
			func(e event_bus.EventT[event_bus.OrganizationDeleted]) error {
				published = append(published, e.Data)
				return nil
			})

		// when
		err := service.Delete(ctx, created.ID)

		// then
		require.NoError(t, err)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
		assert.Equal(t, []event_bus.OrganizationDeleted{{ID: created.ID, OrgName: "Acme Meetups"}}, published)
	})

	t.Run("should succeed when a subscriber fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())
		bus.Subscribe(event_bus.OrganizationDeletedType, func(e event_bus.Event) error {
			return errors.New("boom")
		})

		// when
		err := service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
	})

	t.Run("should return not found and publish nothing for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		calls := 0
		bus.Subscribe(event_bus.OrganizationDeletedType, func(e event_bus.Event) error {
			calls++
			return nil
		})

		// when
		err := service.Delete(ctx, "42")

		// then
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
		assert.Zero(t, calls)
	})
}
