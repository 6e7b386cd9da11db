package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/middleware"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/roster"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPerPage = 100

// serviceErrors maps service sentinels to HTTP statuses and error codes.
var serviceErrors = []struct {
	err    error
	status int
	code   response.ErrCode
}{
	{service.ErrForbidden, http.StatusForbidden, response.ErrForbidden},
	{service.ErrRequestNotFound, http.StatusNotFound, response.ErrRequestNotFound},
	{service.ErrUserNotFound, http.StatusNotFound, response.ErrUserNotFound},
	{service.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
	{service.ErrRequestAlreadyResolved, http.StatusConflict, response.ErrRequestAlreadyResolved},
	{service.ErrInsufficientCredits, http.StatusUnprocessableEntity, response.ErrInsufficientCredits},
	{service.ErrTransactionConflict, http.StatusConflict, response.ErrTransactionConflict},
	{service.ErrEmailTaken, http.StatusConflict, response.ErrEmailTaken},
	{service.ErrInUse, http.StatusConflict, response.ErrInUse},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
	{service.ErrSessionInvalidated, http.StatusUnauthorized, response.ErrSessionInvalidated},
	{service.ErrNotOnRoster, http.StatusNotFound, response.ErrNotOnRoster},
	{roster.ErrNotConfigured, http.StatusInternalServerError, response.ErrRosterUnconfigured},
	{model.ErrUnknownCollection, http.StatusNotFound, response.ErrUnknownCollection},
}

// failFromError writes the error envelope for a service error.
func failFromError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, verr.Fields)
		return
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			response.Fail(c, m.status, m.code)
			return
		}
	}
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// actorOrAbort returns the authenticated actor, writing 401 when absent.
func actorOrAbort(c *gin.Context) (service.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	}
	return actor, ok
}

// uuidParam parses a UUID path parameter, writing 400 when malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// collectionParam resolves the :collection path parameter, writing 404 when unknown.
func collectionParam(c *gin.Context) (model.Collection, bool) {
	col, err := model.ParseCollection(c.Param("collection"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownCollection)
		return "", false
	}
	return col, true
}

// pageParams reads ?page= and ?per_page= with bounds applied.
func pageParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func offsetOf(page, perPage int) int {
	return (page - 1) * perPage
}
