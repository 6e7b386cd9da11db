package handler

import (
	"fmt"
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/export"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// ExportHandler serves collection downloads.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export godoc
// GET /api/v1/admin/export/:collection?format=pdf|xlsx
// Downloads users, classesRequests, creditRequests or guestList. PDF is the default.
func (h *ExportHandler) Export(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	col, ok := collectionParam(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFormat)
		return
	}

	body, filename, err := h.exportService.Export(c.Request.Context(), actor, col, format)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), body)
}
