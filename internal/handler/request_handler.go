package handler

import (
	"context"
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Approver resolves pending requests.
type Approver interface {
	ApproveClassRequest(ctx context.Context, actor service.Actor, id uuid.UUID) (*service.ApprovalResult, error)
	ApproveCreditRequest(ctx context.Context, actor service.Actor, id uuid.UUID) (*service.ApprovalResult, error)
	DeclineRequest(ctx context.Context, actor service.Actor, c model.Collection, id uuid.UUID) (*service.ApprovalResult, error)
}

// RequestLister lists requests for the admin panel.
type RequestLister interface {
	ListClassRequests(ctx context.Context, actor service.Actor, status model.RequestStatus, limit, offset int) ([]model.ClassRequest, int, error)
	ListCreditRequests(ctx context.Context, actor service.Actor, status model.RequestStatus, limit, offset int) ([]model.CreditRequest, int, error)
}

// RequestHandler handles admin request review.
type RequestHandler struct {
	approver Approver
	lister   RequestLister
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(approver Approver, lister RequestLister) *RequestHandler {
	return &RequestHandler{approver: approver, lister: lister}
}

// ListClassRequests godoc
// GET /api/v1/admin/class-requests?status=pending
// Lists class requests newest first, optionally filtered by status.
func (h *RequestHandler) ListClassRequests(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	status := model.RequestStatus(c.Query("status"))
	items, total, err := h.lister.ListClassRequests(c.Request.Context(), actor, status, perPage, offsetOf(page, perPage))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"class_requests": items}, response.NewPagination(page, perPage, total))
}

// ListCreditRequests godoc
// GET /api/v1/admin/credit-requests?status=pending
// Lists credit requests newest first, optionally filtered by status.
func (h *RequestHandler) ListCreditRequests(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	status := model.RequestStatus(c.Query("status"))
	items, total, err := h.lister.ListCreditRequests(c.Request.Context(), actor, status, perPage, offsetOf(page, perPage))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"credit_requests": items}, response.NewPagination(page, perPage, total))
}

// ApproveClassRequest godoc
// POST /api/v1/admin/class-requests/:id/approve
// Takes one credit, approves the request and adds the class to the guest
// list. Calendar failures come back in "warnings" with a 200.
func (h *RequestHandler) ApproveClassRequest(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.approver.ApproveClassRequest(c.Request.Context(), actor, id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// ApproveCreditRequest godoc
// POST /api/v1/admin/credit-requests/:id/approve
// Adds the requested credits and approves the request.
func (h *RequestHandler) ApproveCreditRequest(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.approver.ApproveCreditRequest(c.Request.Context(), actor, id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// DeclineRequest godoc
// POST /api/v1/admin/requests/:collection/:id/decline
// Declines a pending class or credit request. Balances are untouched.
func (h *RequestHandler) DeclineRequest(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	col, ok := collectionParam(c)
	if !ok {
		return
	}
	if !col.IsRequest() {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownCollection)
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.approver.DeclineRequest(c.Request.Context(), actor, col, id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}
