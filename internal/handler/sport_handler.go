package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// SportHandler exposes sport endpoints.
type SportHandler struct {
	sports *service.SportService
}

// NewSportHandler constructs SportHandler.
func NewSportHandler(sports *service.SportService) *SportHandler {
	return &SportHandler{sports: sports}
}

// List godoc
// @Summary List sports
// @Tags Sports
// @Produce json
// @Param includeInactive query bool false "Include inactive sports"
// @Success 200 {object} response.Envelope
// @Router /sports [get]
func (h *SportHandler) List(c *gin.Context) {
	sports, err := h.sports.List(c.Request.Context(), boolQuery(c, "includeInactive"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sports)
}

// Get godoc
// @Summary Get sport detail
// @Tags Sports
// @Produce json
// @Param id path int true "Sport ID"
// @Success 200 {object} response.Envelope
// @Router /sports/{id} [get]
func (h *SportHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	sport, err := h.sports.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sport)
}

// Create godoc
// @Summary Create sport
// @Tags Sports
// @Accept json
// @Produce json
// @Param payload body service.CreateSportRequest true "Sport payload"
// @Success 201 {object} response.Envelope
// @Router /sports [post]
func (h *SportHandler) Create(c *gin.Context) {
	var req service.CreateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sport, err := h.sports.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sport, sport.ID)
}

// Update godoc
// @Summary Update sport
// @Tags Sports
// @Accept json
// @Produce json
// @Param id path int true "Sport ID"
// @Param payload body service.UpdateSportRequest true "Sport payload"
// @Success 200 {object} response.Envelope
// @Router /sports/{id} [put]
func (h *SportHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sport, err := h.sports.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sport)
}

// Delete godoc
// @Summary Deactivate sport
// @Tags Sports
// @Produce json
// @Param id path int true "Sport ID"
// @Success 204
// @Router /sports/{id} [delete]
func (h *SportHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.sports.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
