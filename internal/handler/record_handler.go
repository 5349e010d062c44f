package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// RecordHandler exposes record book endpoints.
type RecordHandler struct {
	records *service.RecordService
}

// NewRecordHandler constructs RecordHandler.
func NewRecordHandler(records *service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// List godoc
// @Summary List records
// @Tags Records
// @Produce json
// @Param eventId query int false "Filter by event"
// @Param sportId query int false "Filter by sport"
// @Param athleteId query int false "Filter by athlete"
// @Param gender query string false "Filter by gender (M or F)"
// @Param recordType query string false "Filter by record type"
// @Param activeOnly query bool false "Only active records"
// @Success 200 {object} response.Envelope
// @Router /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	filter := models.RecordFilter{
		EventID:    intQueryPtr(c, "eventId"),
		SportID:    intQueryPtr(c, "sportId"),
		AthleteID:  intQueryPtr(c, "athleteId"),
		Gender:     c.Query("gender"),
		RecordType: c.Query("recordType"),
		ActiveOnly: boolQuery(c, "activeOnly"),
	}
	records, err := h.records.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// ByEvent godoc
// @Summary List records for one event
// @Tags Records
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /records/event/{id} [get]
func (h *RecordHandler) ByEvent(c *gin.Context) {
	eventID, ok := intParam(c, "id")
	if !ok {
		return
	}
	records, err := h.records.List(c.Request.Context(), models.RecordFilter{EventID: &eventID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// BySport godoc
// @Summary List records for one sport
// @Tags Records
// @Produce json
// @Param id path int true "Sport ID"
// @Success 200 {object} response.Envelope
// @Router /records/sport/{id} [get]
func (h *RecordHandler) BySport(c *gin.Context) {
	sportID, ok := intParam(c, "id")
	if !ok {
		return
	}
	records, err := h.records.List(c.Request.Context(), models.RecordFilter{SportID: &sportID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Leaderboard godoc
// @Summary Top performances for one event and gender
// @Tags Records
// @Produce json
// @Param eventId path int true "Event ID"
// @Param gender query string true "Gender (M or F)"
// @Param top query int false "Number of entries (default 10)"
// @Success 200 {object} response.Envelope
// @Router /records/leaderboard/{eventId} [get]
func (h *RecordHandler) Leaderboard(c *gin.Context) {
	eventID, ok := intParam(c, "eventId")
	if !ok {
		return
	}
	top := 0
	if raw := c.Query("top"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			top = parsed
		}
	}
	records, err := h.records.Leaderboard(c.Request.Context(), eventID, c.Query("gender"), top)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Get godoc
// @Summary Get record detail
// @Tags Records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /records/{id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	record, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Create godoc
// @Summary Create record
// @Tags Records
// @Accept json
// @Produce json
// @Param payload body service.RecordRequest true "Record payload"
// @Success 201 {object} response.Envelope
// @Router /records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var req service.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.records.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record, record.ID)
}

// Update godoc
// @Summary Update record
// @Tags Records
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param payload body service.RecordRequest true "Record payload"
// @Success 200 {object} response.Envelope
// @Router /records/{id} [put]
func (h *RecordHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req service.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.records.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Delete godoc
// @Summary Deactivate record
// @Tags Records
// @Produce json
// @Param id path int true "Record ID"
// @Success 204
// @Router /records/{id} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.records.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
