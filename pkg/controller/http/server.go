package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
)

// functionName is the route name clients use to invoke the provisioner
const functionName = "create-test-admins"

// Server represents the HTTP server
type Server struct {
	*http.Server
	router           chi.Router
	provisionHandler *ProvisionHandler
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, provisioner interfaces.Provisioner) (*Server, error) {
	if provisioner == nil {
		return nil, goerr.New("provisioner is required")
	}

	router := chi.NewRouter()
	provisionHandler := NewProvisionHandler(provisioner)

	// CORS runs before routing so pre-flight requests never reach a handler
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(CORS)
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	// Both the bare function path and the gateway-style path are served
	router.HandleFunc("/"+functionName, provisionHandler.HandleProvision)
	router.Route("/functions/v1", func(r chi.Router) {
		r.HandleFunc("/"+functionName, provisionHandler.HandleProvision)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:           router,
		provisionHandler: provisionHandler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "kadr",
	})
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	message := "Unknown error occurred"
	if err != nil {
		message = err.Error()
	}

	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}
