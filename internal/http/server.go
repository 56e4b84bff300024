// Package http exposes the trip coordination API as JSON over the
// standard library mux.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"collie/internal/core"
	"collie/internal/log"
	"collie/internal/middleware/security"
	"collie/internal/middleware/trace"
	"collie/internal/trips"
)

// Recommender is the slice of the recommendation service the handlers
// need.
type Recommender interface {
	Suggestions(ctx context.Context, destination string, limit int) []core.Suggestion
	RankedPlaces(ctx context.Context, destination string) ([]core.Place, error)
}

// PrefetchPublisher announces a destination winner change so the cache
// can be warmed out of band. Optional; a nil publisher skips it.
type PrefetchPublisher interface {
	PublishPrefetch(ctx context.Context, tripID, destination string) error
}

type Server struct {
	http.Server
	store       trips.Store
	recommender Recommender
	publisher   PrefetchPublisher
	rateLimiter *rateLimiter
	tracer      *trace.Middleware

	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run http.Server.
func NewServer(addr string, store trips.Store, recommender Recommender, publisher PrefetchPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:       store,
		recommender: recommender,
		publisher:   publisher,
		rateLimiter: newRateLimiter(),
		startedAt:   time.Now(),
	}

	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /trip", s.handleCreateTrip)
	mux.HandleFunc("GET /trip/{id}", s.handleGetTrip)
	mux.HandleFunc("PUT /trip/{id}", s.handleRenameTrip)
	mux.HandleFunc("GET /trip/{id}/members", s.handleMembers)
	mux.HandleFunc("POST /trip/{id}/join", s.handleJoin)
	mux.HandleFunc("GET /trip/{id}/options", s.handleGetOptions)
	mux.HandleFunc("POST /trip/{id}/options", s.handleAddOption)
	mux.HandleFunc("POST /trip/{id}/vote", s.handleVote)
	mux.HandleFunc("GET /trip/{id}/results", s.handleResults)

	mux.HandleFunc("POST /trip/{id}/expense", s.handleAddExpense)
	mux.HandleFunc("GET /trip/{id}/expenses", s.handleExpenses)
	mux.HandleFunc("GET /trip/{id}/settle", s.handleSettle)

	mux.HandleFunc("GET /trip/{id}/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /trip/{id}/itinerary", s.handleItinerary)

	s.tracer = trace.NewMiddleware(extractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	requestLogger := log.Middleware(log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP))

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(headers.Middleware(requestLogger(s.withRateLimit(mux)))),
	}

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
