package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/libkeeper/internal/server/services"
	"github.com/dmitrijs2005/libkeeper/internal/timex"
	"github.com/labstack/echo/v4"
)

type ebookRequest struct {
	SectionID  int64      `json:"section_id"`
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	DateIssued timex.Date `json:"date_issued"`
}

func (r ebookRequest) input() services.EbookInput {
	return services.EbookInput{
		SectionID:  r.SectionID,
		Name:       r.Name,
		Content:    r.Content,
		Author:     r.Author,
		DateIssued: r.DateIssued,
	}
}

func (s *Server) createEbook(c echo.Context) error {
	var req ebookRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	e, err := s.svc.Ebooks.Create(c.Request().Context(), caller(c), req.input())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created{Message: "Ebook created successfully!", ID: e.ID})
}

func (s *Server) listEbooks(c echo.Context) error {
	var sectionID *int64
	if raw := c.QueryParam("section_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return s.fail(c, errInvalidID)
		}
		sectionID = &id
	}

	list, err := s.svc.Ebooks.List(c.Request().Context(), sectionID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) getEbook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	e, err := s.svc.Ebooks.Get(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) updateEbook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req ebookRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.svc.Ebooks.Update(c.Request().Context(), caller(c), id, req.input()); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Ebook updated successfully!"))
}

func (s *Server) deleteEbook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.svc.Ebooks.Delete(c.Request().Context(), caller(c), id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Ebook deleted successfully!"))
}

func (s *Server) listRequestedEbooks(c echo.Context) error {
	list, err := s.svc.Ebooks.ListRequestedByCaller(c.Request().Context(), caller(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) listEbooksWithFeedback(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return s.fail(c, err)
	}
	list, err := s.svc.Ebooks.ListWithFeedbackByUser(c.Request().Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
