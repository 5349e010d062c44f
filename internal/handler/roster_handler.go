package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// RosterHandler exposes roster endpoints.
type RosterHandler struct {
	rosters *service.RosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(rosters *service.RosterService) *RosterHandler {
	return &RosterHandler{rosters: rosters}
}

// List godoc
// @Summary List roster entries
// @Tags Rosters
// @Produce json
// @Param sportId query int false "Filter by sport"
// @Param year query int false "Filter by school year"
// @Success 200 {object} response.Envelope
// @Router /rosters [get]
func (h *RosterHandler) List(c *gin.Context) {
	filter := models.RosterFilter{
		SportID:   intQueryPtr(c, "sportId"),
		Year:      intQueryPtr(c, "year"),
		AthleteID: intQueryPtr(c, "athleteId"),
	}
	entries, err := h.rosters.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Years godoc
// @Summary List school years with rosters
// @Tags Rosters
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rosters/years [get]
func (h *RosterHandler) Years(c *gin.Context) {
	years, err := h.rosters.Years(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years)
}

// Export godoc
// @Summary Download a sport's roster as CSV or PDF
// @Tags Rosters
// @Produce text/csv
// @Produce application/pdf
// @Param sportId query int true "Sport ID"
// @Param year query int true "School year"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} file
// @Router /rosters/export [get]
func (h *RosterHandler) Export(c *gin.Context) {
	sportID, ok := requiredIntQuery(c, "sportId")
	if !ok {
		return
	}
	year, ok := requiredIntQuery(c, "year")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.rosters.Export(c.Request.Context(), sportID, year, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("roster-%d-%d.%s", sportID, year, format)))
	c.Data(http.StatusOK, contentType, payload)
}

// Get godoc
// @Summary Get roster entry detail
// @Tags Rosters
// @Produce json
// @Param id path int true "Roster entry ID"
// @Success 200 {object} response.Envelope
// @Router /rosters/{id} [get]
func (h *RosterHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.rosters.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Add godoc
// @Summary Add one athlete to a roster
// @Tags Rosters
// @Accept json
// @Produce json
// @Param payload body service.AddRosterEntryRequest true "Roster payload"
// @Success 201 {object} response.Envelope
// @Router /rosters [post]
func (h *RosterHandler) Add(c *gin.Context) {
	var req service.AddRosterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.rosters.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry, entry.ID)
}

// BulkAdd godoc
// @Summary Add a set of athletes to a roster
// @Tags Rosters
// @Accept json
// @Produce json
// @Param payload body service.BulkRosterRequest true "Roster payload"
// @Success 200 {object} response.Envelope "The full roster for the sport and year"
// @Router /rosters/bulk [post]
func (h *RosterHandler) BulkAdd(c *gin.Context) {
	var req service.BulkRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	roster, err := h.rosters.BulkAdd(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// BulkRemove godoc
// @Summary Remove a set of athletes from a roster
// @Tags Rosters
// @Accept json
// @Produce json
// @Param payload body service.BulkRosterRequest true "Roster payload"
// @Success 200 {object} response.Envelope
// @Router /rosters/bulk-delete [post]
func (h *RosterHandler) BulkRemove(c *gin.Context) {
	var req service.BulkRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	removed, err := h.rosters.BulkRemove(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"removed": removed})
}

// Remove godoc
// @Summary Remove one roster entry
// @Tags Rosters
// @Produce json
// @Param id path int true "Roster entry ID"
// @Success 204
// @Router /rosters/{id} [delete]
func (h *RosterHandler) Remove(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.rosters.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
