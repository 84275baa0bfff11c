package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) librarianStats(c echo.Context) error {
	st, err := s.svc.Stats.Librarian(c.Request().Context(), caller(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) userStats(c echo.Context) error {
	st, err := s.svc.Stats.User(c.Request().Context(), caller(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
