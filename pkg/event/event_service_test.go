package event

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

var eventRepoStub = NewRepositoryStub()

var clock = &utils.FixedClock{}

var service *ServiceImpl

func setup(t *testing.T) func() {
	clock.Set(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	service = NewEventService(eventRepoStub, clock, true)
	return func() {
		t.Log("Teardown after test")
		eventRepoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should store a valid event with timestamps", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, validProps())

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Spring Hackathon", created.EventName)
		assert.Equal(t, clock.Now(), created.CreatedAt)
		assert.Equal(t, clock.Now(), created.UpdatedAt)
		assert.Equal(t, 0, created.Version)
	})

	t.Run("should store dates in UTC with millisecond precision", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		warsaw := time.FixedZone("CET", 3600)
		props := validProps()
		props.StartDate = time.Date(2026, 3, 14, 19, 0, 0, 136474219, warsaw)
		props.EndDate = time.Date(2026, 3, 16, 19, 0, 0, 999999999, warsaw)

		// when
		created, err := service.Create(ctx, props)

		// then
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 14, 18, 0, 0, 136000000, time.UTC), created.StartDate)
		assert.Equal(t, time.Date(2026, 3, 16, 18, 0, 0, 999000000, time.UTC), created.EndDate)
		stored, _ := service.Get(ctx, created.ID)
		assert.Equal(t, created.StartDate, stored.StartDate)
	})

	t.Run("should not store an invalid event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		props := validProps()
		props.EventName = "Too short"

		// when
		_, err := service.Create(ctx, props)

		// then
		assert.True(t, errors.Is(err, apierror.RequestValidation(nil)))
		all, _ := service.List(ctx)
		assert.Empty(t, all)
	})
}

func TestServiceImpl_Get(t *testing.T) {
	t.Run("should return a stored event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())

		// when
		found, err := service.Get(ctx, created.ID)

		// then
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Get(ctx, "42")

		// then
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestServiceImpl_ListBy(t *testing.T) {
	t.Run("should filter by a public field name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first := validProps()
		second := validProps()
		second.Organizer = "user-2"
		second.StartDate = start.Add(-time.Hour)
		third := validProps()
		third.StartDate = start.Add(-2 * time.Hour)
		_, _ = service.Create(ctx, first)
		_, _ = service.Create(ctx, second)
		_, _ = service.Create(ctx, third)

		// when
		events, err := service.ListBy(ctx, "organizer", "user-1")

		// then
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, third.StartDate, events[0].StartDate)
		assert.Equal(t, first.StartDate, events[1].StartDate)
	})

	t.Run("should reject an unknown field", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ListBy(ctx, "detail", "x")

		// then
		assert.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should replace properties and bump updatedAt and version", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())
		clock.Advance(time.Minute)
		props := validProps()
		props.Status = StatusOpen
		props.Description = "Bring a laptop"

		// when
		updated, err := service.Update(ctx, created.ID, props)

		// then
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, StatusOpen, updated.Status)
		assert.Equal(t, "Bring a laptop", updated.Description)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, created.CreatedAt.Add(time.Minute), updated.UpdatedAt)
		assert.Equal(t, 1, updated.Version)
	})

	t.Run("should normalize updated dates", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())
		props := validProps()
		props.StartDate = time.Date(2026, 4, 1, 12, 0, 0, 500, time.FixedZone("EST", -5*3600))

		// when
		updated, err := service.Update(ctx, created.ID, props)

		// then
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 4, 1, 17, 0, 0, 0, time.UTC), updated.StartDate)
	})

	t.Run("should keep the stored event when the update is invalid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())
		props := validProps()
		props.Detail = ""

		// when
		_, err := service.Update(ctx, created.ID, props)

		// then
		assert.Error(t, err)
		stored, _ := service.Get(ctx, created.ID)
		assert.Equal(t, created, stored)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Update(ctx, "42", validProps())

		// then
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should remove the event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, validProps())

		// when
		err := service.Delete(ctx, created.ID)

		// then
		require.NoError(t, err)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("should return not found when nothing was deleted", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, "42")

		// then
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestServiceImpl_DetachOrganization(t *testing.T) {
	t.Run("should clear the organization of events when it is deleted", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		bus := event_bus.NewEventBus()
		unsubscribe := service.SubscribeTo(bus)
		defer unsubscribe()

		attached := validProps()
		attached.Organization = "org-1"
		other := validProps()
		other.Organization = "org-2"
		first, _ := service.Create(ctx, attached)
		second, _ := service.Create(ctx, other)
		clock.Advance(time.Hour)

		// when
		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.OrganizationDeletedType,
			event_bus.OrganizationDeleted{ID: "org-1", OrgName: "Acme"}))

		// then
		require.NoError(t, err)
		detached, _ := service.Get(ctx, first.ID)
		assert.Empty(t, detached.Organization)
		assert.Equal(t, 1, detached.Version)
		assert.Equal(t, clock.Now(), detached.UpdatedAt)

		untouched, _ := service.Get(ctx, second.ID)
		assert.Equal(t, "org-2", untouched.Organization)
		assert.Equal(t, 0, untouched.Version)
	})

	t.Run("should report how many events were detached", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		props := validProps()
		props.Organization = "org-1"
		_, _ = service.Create(ctx, props)
		_, _ = service.Create(ctx, props)

		// when
		count, err := service.DetachOrganization(ctx, "org-1")

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		remaining, _ := service.ListBy(ctx, "organization", "org-1")
		assert.Empty(t, remaining)
	})
}
