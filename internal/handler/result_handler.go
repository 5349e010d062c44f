package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// ResultHandler exposes individual result endpoints.
type ResultHandler struct {
	results *service.ResultService
}

// NewResultHandler constructs ResultHandler.
func NewResultHandler(results *service.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// List godoc
// @Summary List results
// @Tags Results
// @Produce json
// @Param athleteId query int false "Filter by athlete"
// @Param meetId query int false "Filter by meet"
// @Param eventId query int false "Filter by event"
// @Param sportId query int false "Filter by sport"
// @Param activeOnly query bool false "Only active results"
// @Success 200 {object} response.Envelope
// @Router /results [get]
func (h *ResultHandler) List(c *gin.Context) {
	filter := models.ResultFilter{
		AthleteID:  intQueryPtr(c, "athleteId"),
		MeetID:     intQueryPtr(c, "meetId"),
		EventID:    intQueryPtr(c, "eventId"),
		SportID:    intQueryPtr(c, "sportId"),
		ActiveOnly: boolQuery(c, "activeOnly"),
	}
	results, err := h.results.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// ByAthlete godoc
// @Summary List one athlete's results
// @Tags Results
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /results/athlete/{id} [get]
func (h *ResultHandler) ByAthlete(c *gin.Context) {
	athleteID, ok := intParam(c, "id")
	if !ok {
		return
	}
	results, err := h.results.List(c.Request.Context(), models.ResultFilter{AthleteID: &athleteID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// ByMeet godoc
// @Summary List one meet's results
// @Tags Results
// @Produce json
// @Param id path int true "Meet ID"
// @Success 200 {object} response.Envelope
// @Router /results/meet/{id} [get]
func (h *ResultHandler) ByMeet(c *gin.Context) {
	meetID, ok := intParam(c, "id")
	if !ok {
		return
	}
	results, err := h.results.List(c.Request.Context(), models.ResultFilter{MeetID: &meetID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Get godoc
// @Summary Get result detail
// @Tags Results
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} response.Envelope
// @Router /results/{id} [get]
func (h *ResultHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	result, err := h.results.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Create godoc
// @Summary Create result
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body service.ResultRequest true "Result payload"
// @Success 201 {object} response.Envelope
// @Router /results [post]
func (h *ResultHandler) Create(c *gin.Context) {
	var req service.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, result.ID)
}

// BulkCreate godoc
// @Summary Create a batch of results for one meet and event
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body service.BulkCreateResultsRequest true "Results payload"
// @Success 200 {object} response.Envelope "All active results for the meet and event"
// @Router /results/bulk [post]
func (h *ResultHandler) BulkCreate(c *gin.Context) {
	var req service.BulkCreateResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	results, err := h.results.BulkCreate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Update godoc
// @Summary Update result
// @Tags Results
// @Accept json
// @Produce json
// @Param id path int true "Result ID"
// @Param payload body service.ResultRequest true "Result payload"
// @Success 200 {object} response.Envelope
// @Router /results/{id} [put]
func (h *ResultHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req service.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Deactivate result
// @Tags Results
// @Produce json
// @Param id path int true "Result ID"
// @Success 204
// @Router /results/{id} [delete]
func (h *ResultHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.results.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
