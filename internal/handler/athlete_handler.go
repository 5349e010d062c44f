package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// AthleteHandler exposes athlete endpoints.
type AthleteHandler struct {
	athletes *service.AthleteService
}

// NewAthleteHandler constructs AthleteHandler.
func NewAthleteHandler(athletes *service.AthleteService) *AthleteHandler {
	return &AthleteHandler{athletes: athletes}
}

// List godoc
// @Summary List athletes
// @Tags Athletes
// @Produce json
// @Param includeInactive query bool false "Include inactive athletes"
// @Success 200 {object} response.Envelope
// @Router /athletes [get]
func (h *AthleteHandler) List(c *gin.Context) {
	athletes, err := h.athletes.List(c.Request.Context(), boolQuery(c, "includeInactive"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athletes)
}

// Get godoc
// @Summary Get athlete detail
// @Tags Athletes
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} response.Envelope
// @Router /athletes/{id} [get]
func (h *AthleteHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	athlete, err := h.athletes.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athlete)
}

// Create godoc
// @Summary Create athlete
// @Tags Athletes
// @Accept json
// @Produce json
// @Param payload body service.CreateAthleteRequest true "Athlete payload"
// @Success 201 {object} response.Envelope
// @Router /athletes [post]
func (h *AthleteHandler) Create(c *gin.Context) {
	var req service.CreateAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	athlete, err := h.athletes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, athlete, athlete.ID)
}

// Update godoc
// @Summary Update athlete
// @Tags Athletes
// @Accept json
// @Produce json
// @Param id path int true "Athlete ID"
// @Param payload body service.UpdateAthleteRequest true "Athlete payload"
// @Success 200 {object} response.Envelope
// @Router /athletes/{id} [put]
func (h *AthleteHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	athlete, err := h.athletes.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athlete)
}

// Delete godoc
// @Summary Deactivate athlete
// @Tags Athletes
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 204
// @Router /athletes/{id} [delete]
func (h *AthleteHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.athletes.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
