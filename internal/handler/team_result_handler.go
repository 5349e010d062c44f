package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// TeamResultHandler exposes team meet result and standings endpoints.
type TeamResultHandler struct {
	teamResults *service.TeamResultService
}

// NewTeamResultHandler constructs TeamResultHandler.
func NewTeamResultHandler(teamResults *service.TeamResultService) *TeamResultHandler {
	return &TeamResultHandler{teamResults: teamResults}
}

// List godoc
// @Summary List team meet results
// @Tags TeamResults
// @Produce json
// @Param sportId query int false "Filter by sport"
// @Param year query int false "Filter by school year"
// @Param gender query string false "Filter by gender (M or F)"
// @Param activeOnly query bool false "Only active results"
// @Success 200 {object} response.Envelope
// @Router /team-results [get]
func (h *TeamResultHandler) List(c *gin.Context) {
	filter := models.TeamMeetResultFilter{
		SportID:    intQueryPtr(c, "sportId"),
		Year:       intQueryPtr(c, "year"),
		Gender:     c.Query("gender"),
		ActiveOnly: boolQuery(c, "activeOnly"),
	}
	results, err := h.teamResults.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Standings godoc
// @Summary Season standings for one sport, year and gender
// @Tags TeamResults
// @Produce json
// @Param sportId query int true "Sport ID"
// @Param year query int true "School year"
// @Param gender query string true "Gender (M or F)"
// @Success 200 {object} response.Envelope
// @Router /team-results/standings [get]
func (h *TeamResultHandler) Standings(c *gin.Context) {
	sportID, ok := requiredIntQuery(c, "sportId")
	if !ok {
		return
	}
	year, ok := requiredIntQuery(c, "year")
	if !ok {
		return
	}
	standings, err := h.teamResults.Standings(c.Request.Context(), sportID, year, c.Query("gender"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, standings)
}

// Teams godoc
// @Summary Distinct opposing team names for one sport and year
// @Tags TeamResults
// @Produce json
// @Param sportId query int true "Sport ID"
// @Param year query int true "School year"
// @Success 200 {object} response.Envelope
// @Router /team-results/teams [get]
func (h *TeamResultHandler) Teams(c *gin.Context) {
	sportID, ok := requiredIntQuery(c, "sportId")
	if !ok {
		return
	}
	year, ok := requiredIntQuery(c, "year")
	if !ok {
		return
	}
	teams, err := h.teamResults.Teams(c.Request.Context(), sportID, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teams)
}

// Years godoc
// @Summary List school years with team results
// @Tags TeamResults
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /team-results/years [get]
func (h *TeamResultHandler) Years(c *gin.Context) {
	years, err := h.teamResults.Years(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years)
}

// Get godoc
// @Summary Get team result detail
// @Tags TeamResults
// @Produce json
// @Param id path int true "Team result ID"
// @Success 200 {object} response.Envelope
// @Router /team-results/{id} [get]
func (h *TeamResultHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	result, err := h.teamResults.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Create godoc
// @Summary Create team result
// @Tags TeamResults
// @Accept json
// @Produce json
// @Param payload body service.TeamResultRequest true "Team result payload"
// @Success 201 {object} response.Envelope
// @Router /team-results [post]
func (h *TeamResultHandler) Create(c *gin.Context) {
	var req service.TeamResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.teamResults.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, result.ID)
}

// Update godoc
// @Summary Update team result
// @Tags TeamResults
// @Accept json
// @Produce json
// @Param id path int true "Team result ID"
// @Param payload body service.TeamResultRequest true "Team result payload"
// @Success 200 {object} response.Envelope
// @Router /team-results/{id} [put]
func (h *TeamResultHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req service.TeamResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.teamResults.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Deactivate team result
// @Tags TeamResults
// @Produce json
// @Param id path int true "Team result ID"
// @Success 204
// @Router /team-results/{id} [delete]
func (h *TeamResultHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.teamResults.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
