package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Message string          `json:"message"`
	User    models.Identity `json:"user"`
	Token   string          `json:"token"`
}

type loginFunc func(ctx context.Context, username, password string) (*services.Session, error)

func (s *Server) session(c echo.Context, fn loginFunc, okMessage string) error {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	sess, err := fn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, sessionResponse{Message: okMessage, User: sess.User, Token: sess.Token})
}

func (s *Server) registerUser(c echo.Context) error {
	return s.session(c, s.svc.Users.Register, "Register successful!")
}

func (s *Server) loginUser(c echo.Context) error {
	return s.session(c, s.svc.Users.LoginUser, "Login successful!")
}

func (s *Server) loginLibrarian(c echo.Context) error {
	return s.session(c, s.svc.Users.LoginLibrarian, "Librarian login successful!")
}

func (s *Server) listUsers(c echo.Context) error {
	list, err := s.svc.Users.ListUsers(c.Request().Context(), caller(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) protected(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]models.Identity{"logged_in_as": caller(c)})
}
