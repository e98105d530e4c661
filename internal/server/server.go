// Package server assembles the HTTP API around the catalog service.
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"cinelist/api"
	"cinelist/handlers"
	"cinelist/services/metadata"
	"cinelist/services/ratelimit"
	"cinelist/services/scheduler"
	"cinelist/utils"
)

// Options controls listening and inbound protection.
type Options struct {
	Host           string
	Port           int
	AllowedOrigins []string

	// InboundLimit puts the general governor (100 requests per minute per
	// client IP) in front of /api.
	InboundLimit bool
	// Inbound overrides the inbound governor.
	Inbound *ratelimit.Governor
	// SettingsPerMinute caps language, cache, rate-limit reset and task run
	// calls per IP.
	SettingsPerMinute int
	// Scheduler, when set, is exposed under /api/tasks.
	Scheduler *scheduler.Service
	// LogFile is tailed by /api/logs.
	LogFile string
	// TrustedProxies may set X-Forwarded-For and X-Real-IP. Without it the
	// socket peer is the client.
	TrustedProxies *api.TrustedProxies
}

// Server represents the HTTP server.
type Server struct {
	router  *mux.Router
	handler http.Handler
	guard   *api.IPRateLimiter
	server  *http.Server
	addr    string
}

// New wires routes and middleware. Order from the outside in: Recovery,
// ClientIP, RequestID, Logging, CORS, then the inbound governor on /api.
func New(opts Options, svc *metadata.Service) *Server {
	router := utils.NewRouter(utils.OriginPolicy{Extra: opts.AllowedOrigins})
	apiRouter := router.PathPrefix("/api").Subrouter()

	if opts.InboundLimit || opts.Inbound != nil {
		g := opts.Inbound
		if g == nil {
			g = ratelimit.NewGeneral()
		}
		apiRouter.Use(api.GovernorMiddleware(g))
	}

	perMinute := opts.SettingsPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	guard := api.NewIPRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	handlers.NewMetadataHandler(svc).Register(apiRouter)
	handlers.NewSettingsHandler(svc).Register(apiRouter, guard.Guard)
	handlers.NewVersionHandler(svc.Language).Register(apiRouter)
	handlers.NewLogsHandler(opts.LogFile).Register(apiRouter)
	if opts.Scheduler != nil {
		handlers.NewTasksHandler(opts.Scheduler).Register(apiRouter, guard.Guard)
	}

	// Preflight requests need a matching route for the CORS middleware to run.
	apiRouter.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Server{
		router:  router,
		handler: api.Recovery(api.ClientIP(opts.TrustedProxies)(api.RequestID(api.Logging(router)))),
		guard:   guard,
		addr:    net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
	}
}

// Start listens until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Printf("[server] listening on %s", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops background work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.guard.Close()
	if s.server == nil {
		return nil
	}
	log.Printf("[server] shutting down")
	return s.server.Shutdown(ctx)
}

// Handler exposes the full middleware chain for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.addr
}
