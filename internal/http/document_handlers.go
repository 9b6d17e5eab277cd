package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"xflyve-service/internal/http/middleware"
	"xflyve-service/internal/service"
)

// uploadInputFromForm reads the multipart "file" field plus optional
// notes/job_id fields shared by POD and diary uploads.
func uploadInputFromForm(c *gin.Context, withJob bool) (service.UploadInput, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("file is required"))
		return service.UploadInput{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("could not read file"))
		return service.UploadInput{}, false
	}

	input := service.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
		Notes:       c.PostForm("notes"),
	}

	if withJob {
		if raw := strings.TrimSpace(c.PostForm("job_id")); raw != "" {
			jobID, err := uuid.Parse(raw)
			if err != nil {
				file.Close()
				c.JSON(http.StatusBadRequest, errorResponse("invalid job_id"))
				return service.UploadInput{}, false
			}
			input.JobID = &jobID
		}
	}
	return input, true
}

func (h *Handler) uploadPod(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	input, ok := uploadInputFromForm(c, true)
	if !ok {
		return
	}

	pod, err := h.documentService.UploadPod(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(pod))
}

func (h *Handler) getPod(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	pod, err := h.documentService.GetPod(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(pod))
}

func (h *Handler) listMyPods(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	pods, err := h.documentService.ListMyPods(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(pods))
}

func (h *Handler) listAllPods(c *gin.Context) {
	pods, err := h.documentService.ListAllPods(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(pods))
}

func (h *Handler) downloadAllPods(c *gin.Context) {
	filename := fmt.Sprintf("pods_%s.zip", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/zip")
	c.Status(http.StatusOK)

	// Headers are already out, so a mid-stream failure can only be logged.
	if err := h.documentService.ZipAllPods(c.Request.Context(), c.Writer); err != nil {
		h.log.Error().Err(err).Msg("failed to stream pod archive")
	}
}

func (h *Handler) updatePodNotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	pod, err := h.documentService.UpdatePodNotes(c.Request.Context(), principal, id, req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(pod))
}

func (h *Handler) deletePod(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.documentService.DeletePod(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": id}))
}

func (h *Handler) uploadDiary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	input, ok := uploadInputFromForm(c, false)
	if !ok {
		return
	}

	diary, err := h.documentService.UploadDiary(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(diary))
}

func (h *Handler) getDiary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	diary, err := h.documentService.GetDiary(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(diary))
}

func (h *Handler) listMyDiaries(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	diaries, err := h.documentService.ListMyDiaries(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(diaries))
}

func (h *Handler) updateDiaryNotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	diary, err := h.documentService.UpdateDiaryNotes(c.Request.Context(), principal, id, req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(diary))
}

func (h *Handler) deleteDiary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDiary(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": id}))
}
