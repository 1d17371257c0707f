package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carboloom/carboloom/shared/dto"
	sharederrors "github.com/carboloom/carboloom/shared/errors"
)

// RequestTimeout bounds every routed request.
const RequestTimeout = 60 * time.Second

// NewRouter returns a chi router with the default middleware stack and /healthz.
func NewRouter(service, version string, register func(r chi.Router)) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(dto.HealthResponse{Status: "ok", Service: service, Version: version})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sharederrors.Write(w, sharederrors.New(sharederrors.CodeNotFound, "route not found", middleware.GetReqID(r.Context())))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(sharederrors.New("method_not_allowed", "method not allowed", middleware.GetReqID(r.Context())))
	})

	if register != nil {
		register(r)
	}

	return r
}
