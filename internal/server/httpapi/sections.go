package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/libkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type sectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r sectionRequest) input() services.SectionInput {
	return services.SectionInput{Name: r.Name, Description: r.Description}
}

// created is the body of every 201 response.
type created struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (s *Server) createSection(c echo.Context) error {
	var req sectionRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	sec, err := s.svc.Sections.Create(c.Request().Context(), caller(c), req.input())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created{Message: "Section created successfully!", ID: sec.ID})
}

func (s *Server) listSections(c echo.Context) error {
	list, err := s.svc.Sections.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) getSection(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	sec, err := s.svc.Sections.Get(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, sec)
}

func (s *Server) updateSection(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req sectionRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.svc.Sections.Update(c.Request().Context(), caller(c), id, req.input()); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Section updated successfully!"))
}

func (s *Server) deleteSection(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.svc.Sections.Delete(c.Request().Context(), caller(c), id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Section deleted successfully!"))
}
