package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {
	r.Use(logRequests)
	r.Use(recoverPanics)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apierror.Write(w, apierror.NotFound("Route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apierror.Write(w, apierror.BadRequest(fmt.Sprintf("Method %s not allowed on %s", req.Method, req.URL.Path)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		log.WithFields(log.Fields{
			"method":  req.Method,
			"path":    req.URL.Path,
			"status":  rec.status,
			"latency": time.Since(start).String(),
		}).Info("request handled")
	})
}

// recoverPanics turns a panicking handler into a 500 answered through apierror.Write.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				apierror.Write(w, fmt.Errorf("panic serving %s %s: %v", req.Method, req.URL.Path, p))
			}
		}()
		next.ServeHTTP(w, req)
	})
}
