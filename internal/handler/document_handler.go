package handler

import (
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler is the admin's raw document browser.
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// ListCollections godoc
// GET /api/v1/admin/documents
func (h *DocumentHandler) ListCollections(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	collections, err := h.documentService.Collections(actor)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"collections": collections})
}

// ListDocuments godoc
// GET /api/v1/admin/documents/:collection
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	col, ok := collectionParam(c)
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	docs, total, err := h.documentService.List(c.Request.Context(), actor, col, perPage, offsetOf(page, perPage))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"documents": docs}, response.NewPagination(page, perPage, total))
}

// GetDocument godoc
// GET /api/v1/admin/documents/:collection/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	col, ok := collectionParam(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), actor, col, id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

// UpdateDocument godoc
// PUT /api/v1/admin/documents/:collection/:id
// Body is a JSON object of fields to overwrite. Only editable fields apply.
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	col, ok := collectionParam(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), actor, col, id, fields)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

// DeleteDocument godoc
// DELETE /api/v1/admin/documents/:collection/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	col, ok := collectionParam(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), actor, col, id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

type bulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=500"`
}

// BulkDeleteDocuments godoc
// POST /api/v1/admin/documents/:collection/bulk-delete
// Body {ids: [...]}. Responds with how many documents existed and were removed.
func (h *DocumentHandler) BulkDeleteDocuments(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	col, ok := collectionParam(c)
	if !ok {
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	n, err := h.documentService.BulkDelete(c.Request.Context(), actor, col, req.IDs)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n})
}
