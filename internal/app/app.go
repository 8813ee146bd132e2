package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/eventboard/eventboard/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Backend is the open storage as the application lifecycle sees it.
type Backend interface {
	Pinger
	Close(ctx context.Context) error
}

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg     config.Application
	storage Backend
	deps    *Dependencies
	router  *mux.Router
	srv     *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newApplication(cfg, storage, storage.Repositories()), nil
}

func newApplication(cfg config.Application, storage Backend, repos Repositories) *Application {
	deps := BuildDependencies(repos, storage, cfg)
	r := NewRouter(deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, storage: storage, deps: deps, router: r, srv: srv}
}

// Run serves until ctx is done, then drains in-flight requests and closes the storage.
func (a *Application) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		a.close(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.srv.Shutdown(shutdownCtx)
	a.close(shutdownCtx)
	return err
}

func (a *Application) close(ctx context.Context) {
	a.deps.Close()
	if err := a.storage.Close(ctx); err != nil {
		log.Errorf("failed to close storage: %v", err)
	}
}
