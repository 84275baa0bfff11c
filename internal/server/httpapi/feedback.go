package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/libkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type feedbackRequest struct {
	UserID       int64  `json:"user_id"`
	EbookID      int64  `json:"ebook_id"`
	Feedback     string `json:"feedback"`
	FeedbackDate string `json:"feedback_date"`
}

func (s *Server) createFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	f, err := s.svc.Feedback.Create(c.Request().Context(), services.FeedbackInput{
		UserID:       req.UserID,
		EbookID:      req.EbookID,
		Feedback:     req.Feedback,
		FeedbackDate: req.FeedbackDate,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created{Message: "Feedback created successfully!", ID: f.ID})
}

func (s *Server) listFeedback(c echo.Context) error {
	list, err := s.svc.Feedback.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) getFeedback(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	f, err := s.svc.Feedback.Get(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (s *Server) updateFeedback(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req feedbackRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.svc.Feedback.Update(c.Request().Context(), id, req.Feedback); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Feedback updated successfully!"))
}

func (s *Server) deleteFeedback(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.svc.Feedback.Delete(c.Request().Context(), id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, message("Feedback deleted successfully!"))
}
