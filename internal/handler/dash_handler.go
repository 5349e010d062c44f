package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oahornets/crosstrack-api/internal/service"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// DashHandler exposes the Dash in the Dark page and file endpoints.
type DashHandler struct {
	dash *service.DashService
}

// NewDashHandler constructs DashHandler.
func NewDashHandler(dash *service.DashService) *DashHandler {
	return &DashHandler{dash: dash}
}

// List godoc
// @Summary List dash pages
// @Tags Dash
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dash [get]
func (h *DashHandler) List(c *gin.Context) {
	pages, err := h.dash.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pages)
}

// Years godoc
// @Summary List years with dash content
// @Tags Dash
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dash/years [get]
func (h *DashHandler) Years(c *gin.Context) {
	years, err := h.dash.Years(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years)
}

// Get godoc
// @Summary Get one year's dash page with its files
// @Tags Dash
// @Produce json
// @Param year path int true "Event year"
// @Success 200 {object} response.Envelope
// @Router /dash/year/{year} [get]
func (h *DashHandler) Get(c *gin.Context) {
	year, ok := intParam(c, "year")
	if !ok {
		return
	}
	page, err := h.dash.Get(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Upsert godoc
// @Summary Write one year's dash page
// @Tags Dash
// @Accept json
// @Produce json
// @Param year path int true "Event year"
// @Param payload body service.UpsertDashRequest true "Dash payload"
// @Success 200 {object} response.Envelope
// @Router /dash/year/{year} [put]
func (h *DashHandler) Upsert(c *gin.Context) {
	year, ok := intParam(c, "year")
	if !ok {
		return
	}
	var req service.UpsertDashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.dash.Upsert(c.Request.Context(), year, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// UploadFile godoc
// @Summary Attach a document to one year's dash page
// @Tags Dash
// @Accept multipart/form-data
// @Produce json
// @Param year path int true "Event year"
// @Param file formData file true "Document"
// @Param category formData string true "Registration, PastResults or CourseMap"
// @Param description formData string false "Optional description"
// @Success 201 {object} response.Envelope
// @Router /dash/year/{year}/files [post]
func (h *DashHandler) UploadFile(c *gin.Context) {
	year, ok := intParam(c, "year")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer src.Close()

	req := service.UploadDashFileRequest{
		Year:        year,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Category:    c.PostForm("category"),
		Body:        src,
	}
	if description := c.PostForm("description"); description != "" {
		req.Description = &description
	}

	file, err := h.dash.UploadFile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, file, file.ID)
}

// DownloadFile godoc
// @Summary Download one dash document
// @Tags Dash
// @Produce octet-stream
// @Param fileId path int true "File ID"
// @Success 200 {file} file
// @Router /dash/files/{fileId}/download [get]
func (h *DashHandler) DownloadFile(c *gin.Context) {
	fileID, ok := intParam(c, "fileId")
	if !ok {
		return
	}
	meta, file, err := h.dash.OpenFile(c.Request.Context(), fileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", meta.OriginalFileName),
	}
	c.DataFromReader(http.StatusOK, meta.FileSize, meta.ContentType, file, extraHeaders)
}

// DeleteFile godoc
// @Summary Remove one dash document
// @Tags Dash
// @Produce json
// @Param fileId path int true "File ID"
// @Success 204
// @Router /dash/files/{fileId} [delete]
func (h *DashHandler) DeleteFile(c *gin.Context) {
	fileID, ok := intParam(c, "fileId")
	if !ok {
		return
	}
	if err := h.dash.DeleteFile(c.Request.Context(), fileID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
