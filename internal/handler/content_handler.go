package handler

import (
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/validator"
	"github.com/gin-gonic/gin"
)

// ContentHandler handles notices and upcoming concerts.
type ContentHandler struct {
	contentService *service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ListNotices godoc
// GET /api/v1/public/notices
func (h *ContentHandler) ListNotices(c *gin.Context) {
	notices, err := h.contentService.ListNotices(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notices": notices})
}

// ListUpcomingConcerts godoc
// GET /api/v1/public/concerts
func (h *ContentHandler) ListUpcomingConcerts(c *gin.Context) {
	concerts, err := h.contentService.ListUpcomingConcerts(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"concerts": concerts})
}

// CreateNotice godoc
// POST /api/v1/admin/notices
func (h *ContentHandler) CreateNotice(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req model.NoticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notice, err := h.contentService.CreateNotice(c.Request.Context(), actor, req.Body)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"notice": notice})
}

// UpdateNotice godoc
// PUT /api/v1/admin/notices/:id
func (h *ContentHandler) UpdateNotice(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.NoticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notice, err := h.contentService.UpdateNotice(c.Request.Context(), actor, id, req.Body)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notice": notice})
}

// DeleteNotice godoc
// DELETE /api/v1/admin/notices/:id
func (h *ContentHandler) DeleteNotice(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteNotice(c.Request.Context(), actor, id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListAllConcerts godoc
// GET /api/v1/admin/concerts
// Includes concerts that already took place.
func (h *ContentHandler) ListAllConcerts(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	concerts, err := h.contentService.ListAllConcerts(c.Request.Context(), actor)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"concerts": concerts})
}

// CreateConcert godoc
// POST /api/v1/admin/concerts
func (h *ContentHandler) CreateConcert(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req model.ConcertRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	concert, err := h.contentService.CreateConcert(c.Request.Context(), actor, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"concert": concert})
}

// UpdateConcert godoc
// PUT /api/v1/admin/concerts/:id
func (h *ContentHandler) UpdateConcert(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.ConcertRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	concert, err := h.contentService.UpdateConcert(c.Request.Context(), actor, id, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"concert": concert})
}

// DeleteConcert godoc
// DELETE /api/v1/admin/concerts/:id
func (h *ContentHandler) DeleteConcert(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteConcert(c.Request.Context(), actor, id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
