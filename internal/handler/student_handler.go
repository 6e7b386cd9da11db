package handler

import (
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/validator"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles the student dashboard and request submission.
type StudentHandler struct {
	userService    *service.UserService
	requestService *service.RequestService
	formService    *service.FormService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(userService *service.UserService, requestService *service.RequestService, formService *service.FormService) *StudentHandler {
	return &StudentHandler{
		userService:    userService,
		requestService: requestService,
		formService:    formService,
	}
}

// Dashboard godoc
// GET /api/v1/student/dashboard
// Returns the balance, its display string and the student's own requests.
func (h *StudentHandler) Dashboard(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	dashboard, err := h.userService.StudentDashboard(c.Request.Context(), actor)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dashboard)
}

// GetBalance godoc
// GET /api/v1/student/balance
func (h *StudentHandler) GetBalance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	n, err := h.userService.GetBalance(c.Request.Context(), actor.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"balance": model.NewBalance(n)})
}

// SubmitClassRequest godoc
// POST /api/v1/student/class-requests
// Books a class for a date (YYYY-MM-DD) and time (HH:MM). The request stays
// pending until an administrator resolves it.
func (h *StudentHandler) SubmitClassRequest(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req model.SubmitClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, err := h.requestService.SubmitClassRequest(c.Request.Context(), actor, req.Date, req.Time)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class_request": created})
}

// SubmitCreditRequest godoc
// POST /api/v1/student/credit-requests
// Asks for credits to be added after a payment.
func (h *StudentHandler) SubmitCreditRequest(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req model.SubmitCreditRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, err := h.requestService.SubmitCreditRequest(c.Request.Context(), actor, req.Amount, req.ProofMessage, req.PaymentMethod)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"credit_request": created})
}

// ListClassRequests godoc
// GET /api/v1/student/class-requests
func (h *StudentHandler) ListClassRequests(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	items, total, err := h.requestService.ListOwnClassRequests(c.Request.Context(), actor, perPage, offsetOf(page, perPage))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"class_requests": items}, response.NewPagination(page, perPage, total))
}

// ListCreditRequests godoc
// GET /api/v1/student/credit-requests
func (h *StudentHandler) ListCreditRequests(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	items, total, err := h.requestService.ListOwnCreditRequests(c.Request.Context(), actor, perPage, offsetOf(page, perPage))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"credit_requests": items}, response.NewPagination(page, perPage, total))
}

// VerifyStudent godoc
// POST /api/v1/me/verify-student
// Promotes the signed-in user to student once their email is on the roster.
func (h *StudentHandler) VerifyStudent(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	user, err := h.formService.VerifyStudent(c.Request.Context(), actor)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": user,
		"home": user.Role.HomePath(),
	})
}
