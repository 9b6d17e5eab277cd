package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"xflyve-service/internal/http/middleware"
	"xflyve-service/internal/service"
)

func (h *Handler) listAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.ListDaily(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(assignments))
}

func (h *Handler) createAssignment(c *gin.Context) {
	var req service.AssignmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	assignment, err := h.assignmentService.CreateDaily(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(assignment))
}

func (h *Handler) updateAssignment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.AssignmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	assignment, err := h.assignmentService.UpdateDaily(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) deleteAssignment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.assignmentService.DeleteDaily(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": id}))
}

func (h *Handler) assignPermanent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req service.AssignmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	assignment, err := h.assignmentService.AssignPermanent(c.Request.Context(), principal.UserID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) getDriverAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	driverID, ok := parseIDParam(c)
	if !ok {
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date query parameter is required"))
		return
	}

	assignment, err := h.assignmentService.GetDriverAssignment(c.Request.Context(), principal, driverID, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) getPermanentAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	driverID, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetPermanent(c.Request.Context(), principal, driverID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(assignment))
}
