package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"xflyve-service/internal/export"
	"xflyve-service/internal/http/middleware"
	"xflyve-service/internal/service"
)

func (h *Handler) createWorkLog(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req service.WorkLogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	log, err := h.workLogService.Create(c.Request.Context(), principal.UserID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(log))
}

func (h *Handler) listMyWorkLogs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	logs, err := h.workLogService.ListMine(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(logs))
}

func (h *Handler) listAllWorkLogs(c *gin.Context) {
	driverID, ok := optionalDriverFilter(c)
	if !ok {
		return
	}

	logs, err := h.workLogService.ListAll(c.Request.Context(), driverID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(logs))
}

func (h *Handler) getWorkLog(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	log, err := h.workLogService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(log))
}

func (h *Handler) updateWorkLog(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.UpdateWorkLogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	log, err := h.workLogService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(log))
}

func (h *Handler) deleteWorkLog(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.workLogService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": id}))
}

func (h *Handler) exportWorkLogs(c *gin.Context) {
	driverID, ok := optionalDriverFilter(c)
	if !ok {
		return
	}

	logs, err := h.workLogService.ListAll(c.Request.Context(), driverID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	buf, filename, err := export.WorkLogsToExcel(logs)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}

func optionalDriverFilter(c *gin.Context) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query("driver_id"))
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid driver_id"))
		return nil, false
	}
	return &id, true
}
