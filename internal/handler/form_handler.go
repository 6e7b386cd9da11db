package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/roster"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// SubmissionChecker looks up registration form submissions.
type SubmissionChecker interface {
	CheckSubmission(ctx context.Context, email string) (bool, error)
}

// FormHandler answers whether an email has submitted the registration form.
type FormHandler struct {
	checker SubmissionChecker
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(checker SubmissionChecker) *FormHandler {
	return &FormHandler{checker: checker}
}

type formCheckRequest struct {
	Email string `json:"email"`
}

// CheckSubmission godoc
// POST /api/v1/forms/check
// Body {email}; responds {hasSubmitted}. 400 for a malformed body or a missing
// email, 500 when the roster spreadsheet is not configured.
func (h *FormHandler) CheckSubmission(c *gin.Context) {
	var req formCheckRequest
	// An empty body reaches the checker and is reported as a missing email.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON"})
		return
	}

	ok, err := h.checker.CheckSubmission(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		case errors.Is(err, roster.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check form responses"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasSubmitted": ok})
}
