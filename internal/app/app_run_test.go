package app

import (
	"context"
	"testing"
	"time"

	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/internal/event_bus"
	"github.com/eventboard/eventboard/pkg/event"
	"github.com/eventboard/eventboard/pkg/organization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendStub struct {
	closed int
}

func (b *backendStub) Ping(ctx context.Context) error {
	return nil
}

func (b *backendStub) Close(ctx context.Context) error {
	b.closed++
	return nil
}

func setupApplication(t *testing.T, addr string) (*Application, *backendStub) {
	cfg := config.Defaults()
	cfg.Server.Addr = addr
	backend := &backendStub{}
	repos := Repositories{
		Events:        event.NewRepositoryStub(),
		Organizations: organization.NewRepositoryStub(),
	}
	return newApplication(cfg, backend, repos), backend
}

func TestApplication_Run(t *testing.T) {
	t.Run("should shut down and close the storage when the context is cancelled", func(t *testing.T) {
		// given
		application, backend := setupApplication(t, "127.0.0.1:0")
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- application.Run(ctx)
		}()

		// when
		cancel()

		// then
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(shutdownTimeout):
			t.Fatal("Run did not return after the context was cancelled")
		}
		assert.Equal(t, 1, backend.closed)

		// the event service no longer reacts to deleted organizations
		attached, err := application.deps.EventService.Create(context.Background(), event.Props{
			EventName:    "Spring Hackathon",
			Detail:       "Two days of building things",
			Organizer:    "user-1",
			Organization: "org-1",
			Status:       event.StatusOpen,
			StartDate:    time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 3, 16, 18, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		err = application.deps.EventBus.Publish(event_bus.NewEvent(context.Background(),
			event_bus.OrganizationDeletedType, event_bus.OrganizationDeleted{ID: "org-1"}))
		require.NoError(t, err)
		stored, _ := application.deps.EventService.Get(context.Background(), attached.ID)
		assert.Equal(t, "org-1", stored.Organization)
	})

	t.Run("should return the listen error and close the storage", func(t *testing.T) {
		// given
		application, backend := setupApplication(t, "127.0.0.1:-1")

		// when
		err := application.Run(context.Background())

		// then
		assert.Error(t, err)
		assert.Equal(t, 1, backend.closed)
	})
}
