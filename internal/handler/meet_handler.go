package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// MeetHandler exposes meet endpoints.
type MeetHandler struct {
	meets *service.MeetService
}

// NewMeetHandler constructs MeetHandler.
func NewMeetHandler(meets *service.MeetService) *MeetHandler {
	return &MeetHandler{meets: meets}
}

// List godoc
// @Summary List meets
// @Tags Meets
// @Produce json
// @Param sportId query int false "Filter by sport"
// @Param year query int false "Filter by school year"
// @Param activeOnly query bool false "Only active meets"
// @Success 200 {object} response.Envelope
// @Router /meets [get]
func (h *MeetHandler) List(c *gin.Context) {
	filter := models.MeetFilter{
		SportID:    intQueryPtr(c, "sportId"),
		Year:       intQueryPtr(c, "year"),
		ActiveOnly: boolQuery(c, "activeOnly"),
	}
	meets, err := h.meets.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meets)
}

// Years godoc
// @Summary List school years with meets
// @Tags Meets
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meets/years [get]
func (h *MeetHandler) Years(c *gin.Context) {
	years, err := h.meets.Years(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years)
}

// Get godoc
// @Summary Get meet detail
// @Tags Meets
// @Produce json
// @Param id path int true "Meet ID"
// @Success 200 {object} response.Envelope
// @Router /meets/{id} [get]
func (h *MeetHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	meet, err := h.meets.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meet)
}

// Create godoc
// @Summary Create meet
// @Tags Meets
// @Accept json
// @Produce json
// @Param payload body service.CreateMeetRequest true "Meet payload"
// @Success 201 {object} response.Envelope
// @Router /meets [post]
func (h *MeetHandler) Create(c *gin.Context) {
	var req service.CreateMeetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	meet, err := h.meets.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, meet, meet.ID)
}

// Update godoc
// @Summary Update meet
// @Tags Meets
// @Accept json
// @Produce json
// @Param id path int true "Meet ID"
// @Param payload body service.UpdateMeetRequest true "Meet payload"
// @Success 200 {object} response.Envelope
// @Router /meets/{id} [put]
func (h *MeetHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateMeetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	meet, err := h.meets.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meet)
}

// Delete godoc
// @Summary Deactivate meet
// @Tags Meets
// @Produce json
// @Param id path int true "Meet ID"
// @Success 204
// @Router /meets/{id} [delete]
func (h *MeetHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.meets.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
