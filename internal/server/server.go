// Package server exposes the analytics engine's output over a small
// read-only HTTP API plus an HTML dashboard with a live websocket feed.
// Every request recomputes from a fresh store snapshot; the server holds
// no mutable analytics state of its own.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/observability"
	"ecommerce-analytics/internal/storage"
)

// Options configures a Server.
type Options struct {
	Addr            string
	OrderStore      storage.OrderStore
	SnapshotStore   storage.SnapshotStore // optional; /status reports last run when set
	Analytics       analytics.Config
	RefreshInterval time.Duration // websocket push interval
	Logger          *log.Logger
}

// Server serves the read-only analytics API.
type Server struct {
	orders      storage.OrderStore
	snapshots   storage.SnapshotStore
	cfg         analytics.Config
	refresh     time.Duration
	logger      *log.Logger
	broadcaster *Broadcaster
	mux         *http.ServeMux
	httpServer  *http.Server
	started     time.Time
}

// New creates a server with all routes registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "[server] ", log.LstdFlags|log.Lshortfile)
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Second
	}

	mux := http.NewServeMux()
	s := &Server{
		orders:      opts.OrderStore,
		snapshots:   opts.SnapshotStore,
		cfg:         opts.Analytics,
		refresh:     opts.RefreshInterval,
		logger:      opts.Logger,
		broadcaster: NewBroadcaster(opts.Logger),
		mux:         mux,
		httpServer: &http.Server{
			Addr:         opts.Addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.instrument("dashboard", s.handleDashboard))
	s.mux.HandleFunc("/api/metrics", s.instrument("metrics", s.handleMetrics))
	s.mux.HandleFunc("/api/monthly-data", s.instrument("monthly-data", s.handleMonthlyData))
	s.mux.HandleFunc("/api/categories", s.instrument("categories", s.handleCategories))
	s.mux.HandleFunc("/api/products", s.instrument("products", s.handleProducts))
	s.mux.HandleFunc("/api/segments", s.instrument("segments", s.handleSegments))
	s.mux.HandleFunc("/api/top-customers", s.instrument("top-customers", s.handleTopCustomers))
	s.mux.HandleFunc("/api/recent-orders", s.instrument("recent-orders", s.handleRecentOrders))
	s.mux.HandleFunc("/ws", s.broadcaster.Handler())
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.Handle("/metrics", observability.Handler())
}

// Start begins serving and runs the websocket push loop until ctx is
// cancelled. It blocks until the HTTP server stops.
func (s *Server) Start(ctx context.Context) error {
	s.started = time.Now().UTC()

	go s.pushLoop(ctx)

	s.logger.Printf("listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.broadcaster.Close()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the route mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// pushLoop periodically recomputes the overview metrics and broadcasts
// them to websocket clients.
func (s *Server) pushLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.broadcaster.ClientCount() == 0 {
				continue
			}
			summary, err := s.summarize(ctx)
			if err != nil {
				s.logger.Printf("websocket push: %v", err)
				continue
			}
			s.broadcaster.Broadcast(toMetricsResponse(summary))
		}
	}
}

// summarize loads a fresh order snapshot and runs the engine over it.
func (s *Server) summarize(ctx context.Context) (*analytics.Summary, error) {
	start := time.Now()
	orders, err := s.orders.GetAll(ctx)
	observability.RecordDBQuery("postgres", "get_all_orders", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return analytics.Summarize(orders, s.cfg), nil
}

// instrument wraps a handler with request metrics.
func (s *Server) instrument(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		observability.RecordHTTPRequest(endpoint, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
