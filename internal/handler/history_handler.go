package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// HistoryHandler exposes the per-sport history page endpoints.
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler constructs HistoryHandler.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List godoc
// @Summary List history pages
// @Tags History
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	pages, err := h.history.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pages)
}

// Get godoc
// @Summary Get one sport's history page
// @Tags History
// @Produce json
// @Param sportId path int true "Sport ID"
// @Success 200 {object} response.Envelope
// @Router /history/sport/{sportId} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	sportID, ok := intParam(c, "sportId")
	if !ok {
		return
	}
	page, err := h.history.Get(c.Request.Context(), sportID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Upsert godoc
// @Summary Write one sport's history page
// @Tags History
// @Accept json
// @Produce json
// @Param sportId path int true "Sport ID"
// @Param payload body service.UpsertHistoryRequest true "History payload"
// @Success 200 {object} response.Envelope
// @Router /history/sport/{sportId} [put]
func (h *HistoryHandler) Upsert(c *gin.Context) {
	sportID, ok := intParam(c, "sportId")
	if !ok {
		return
	}
	var req service.UpsertHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.history.Upsert(c.Request.Context(), sportID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Delete godoc
// @Summary Remove one sport's history page
// @Tags History
// @Produce json
// @Param sportId path int true "Sport ID"
// @Success 204
// @Router /history/sport/{sportId} [delete]
func (h *HistoryHandler) Delete(c *gin.Context) {
	sportID, ok := intParam(c, "sportId")
	if !ok {
		return
	}
	if err := h.history.Delete(c.Request.Context(), sportID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
