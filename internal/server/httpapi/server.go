// Package httpapi exposes the library services over a JSON REST API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/logging"
	"github.com/dmitrijs2005/libkeeper/internal/server/config"
	"github.com/labstack/echo/v4"
)

type Server struct {
	address         string
	echo            *echo.Echo
	logger          logging.Logger
	svc             Services
	jwtSecret       []byte
	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, svc Services) *Server {
	s := &Server{
		address:         cfg.EndpointAddrHTTP,
		echo:            echo.New(),
		logger:          l.With("module", "http_server"),
		svc:             svc,
		jwtSecret:       []byte(cfg.SecretKey),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleHTTPError

	s.echo.Use(s.middleware(cfg)...)
	s.routes()
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) routes() {
	e := s.echo
	authed := s.requireToken()

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API is running.")
	})

	e.POST("/register-user", s.registerUser)
	e.POST("/login-user", s.loginUser)
	e.POST("/login-librarian", s.loginLibrarian)
	e.GET("/get-users", s.listUsers, authed)
	e.GET("/protected", s.protected, authed)

	e.POST("/sections", s.createSection, authed)
	e.GET("/sections", s.listSections)
	e.GET("/sections/:id", s.getSection)
	e.PUT("/sections/:id", s.updateSection, authed)
	e.DELETE("/sections/:id", s.deleteSection, authed)

	e.POST("/ebooks", s.createEbook, authed)
	e.GET("/ebooks", s.listEbooks)
	e.GET("/ebooks/requests", s.listRequestedEbooks, authed)
	e.GET("/ebooks/feedback/:user_id", s.listEbooksWithFeedback)
	e.GET("/ebooks/:id", s.getEbook)
	e.PUT("/ebooks/:id", s.updateEbook, authed)
	e.DELETE("/ebooks/:id", s.deleteEbook, authed)

	e.POST("/ebook_requests", s.createEbookRequest, authed)
	e.GET("/ebook_requests", s.listEbookRequests)
	e.GET("/ebook_requests_user", s.listCallerEbookRequests, authed)
	e.GET("/ebook_requests/:id", s.getEbookRequest)
	e.PUT("/ebook_requests/:id", s.updateEbookRequest, authed)
	e.DELETE("/ebook_requests/:id", s.deleteEbookRequest, authed)

	e.POST("/feedback", s.createFeedback)
	e.GET("/feedback", s.listFeedback)
	e.GET("/feedback/:id", s.getFeedback)
	e.PUT("/feedback/:id", s.updateFeedback)
	e.DELETE("/feedback/:id", s.deleteFeedback)

	e.GET("/stats/librarian", s.librarianStats, authed)
	e.GET("/stats/user", s.userStats, authed)
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
