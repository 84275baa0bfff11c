package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/libkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type ebookRequestRequest struct {
	UserID     int64  `json:"user_id"`
	EbookID    int64  `json:"ebook_id"`
	ReturnDate string `json:"return_date"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) createEbookRequest(c echo.Context) error {
	var req ebookRequestRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	r, err := s.svc.EbookRequests.Create(c.Request().Context(), caller(c), services.EbookRequestInput{
		UserID:     req.UserID,
		EbookID:    req.EbookID,
		ReturnDate: req.ReturnDate,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created{Message: "Ebook request created successfully!", ID: r.ID})
}

func (s *Server) listEbookRequests(c echo.Context) error {
	list, err := s.svc.EbookRequests.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) listCallerEbookRequests(c echo.Context) error {
	list, err := s.svc.EbookRequests.ListForCaller(c.Request().Context(), caller(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) getEbookRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	r, err := s.svc.EbookRequests.Get(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) updateEbookRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if _, err := s.svc.EbookRequests.UpdateStatus(c.Request().Context(), caller(c), id, req.Status); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Ebook request updated successfully!"))
}

func (s *Server) deleteEbookRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.svc.EbookRequests.Delete(c.Request().Context(), caller(c), id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Ebook request deleted successfully!"))
}
