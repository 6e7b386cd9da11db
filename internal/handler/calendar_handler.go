package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/calendar"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// EventCreator creates calendar events on behalf of an administrator.
type EventCreator interface {
	CreateEvent(ctx context.Context, actor service.Actor, e calendar.Event) (*calendar.Result, error)
}

// CalendarHandler exposes calendar event creation. Its responses use the
// flat {success, ...} shape calendar clients expect instead of the envelope.
type CalendarHandler struct {
	creator EventCreator
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(creator EventCreator) *CalendarHandler {
	return &CalendarHandler{creator: creator}
}

// CreateEvent godoc
// POST /api/v1/admin/calendar/events
// Body {summary, description, startDateTime, endDateTime, timeZone}. The end
// defaults to one hour after the start and the time zone to the studio's.
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var ev calendar.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "request body must be a JSON event",
			"code":    "INVALID_EVENT",
		})
		return
	}

	res, err := h.creator.CreateEvent(c.Request.Context(), actor, ev)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error(), "code": "FORBIDDEN"})
			return
		}
		c.JSON(calendar.HTTPStatus(err), gin.H{
			"success": false,
			"message": err.Error(),
			"code":    calendar.ErrorCode(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"eventId":   res.EventID,
		"eventLink": res.EventLink,
	})
}
