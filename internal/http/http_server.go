package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/submission"
	"gitlab.com/fcv-2025.net/submission-judge/internal/handlers"
	"gitlab.com/fcv-2025.net/submission-judge/internal/handlers/submissions"
)

type ServiceProvider struct {
	submissionService submission.ISubmissionService
	tokenVerifier     primary.TokenVerifier
	gatherer          prometheus.Gatherer
}

func NewServiceProvider(
	submissionService submission.ISubmissionService,
	tokenVerifier primary.TokenVerifier,
	gatherer prometheus.Gatherer,
) *ServiceProvider {
	return &ServiceProvider{
		submissionService: submissionService,
		tokenVerifier:     tokenVerifier,
		gatherer:          gatherer,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	CookieName      string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName, cookieName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		CookieName:      cookieName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.submissionService == nil || s.ServiceProvider.tokenVerifier == nil {
		return errors.New("http server: missing services")
	}

	r := mux.NewRouter()
	mw := handlers.New(s.ServiceProvider.tokenVerifier, s.CookieName, s.logger)
	r.Use(mw.AccessLog)

	handlers.NewHealthHandler(s.ServiceName).RegisterRoutes(r)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.submissionService, s.logger).
		RegisterRoutes(r, mw)
	if s.ServiceProvider.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.ServiceProvider.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	s.router = r
	// Write timeout must outlast the poll budget of a submit
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful Stop is not an error.
func (s *Server) Start() error {
	if s.srv == nil {
		return errors.New("http server: Init not called")
	}
	s.logger.Info("Server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server error", "error", err)
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
