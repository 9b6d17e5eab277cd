package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xflyve-service/internal/http/middleware"
	"xflyve-service/internal/service"
)

func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.jobService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(jobs))
}

func (h *Handler) createJob(c *gin.Context) {
	var req service.CreateJobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(job))
}

func (h *Handler) getJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(job))
}

func (h *Handler) listMyJobs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	jobs, err := h.jobService.ListByDriver(c.Request.Context(), principal, principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(jobs))
}

func (h *Handler) listDriverJobs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	driverID, ok := parseIDParam(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListByDriver(c.Request.Context(), principal, driverID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(jobs))
}

func (h *Handler) updateJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.UpdateJobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(job))
}

func (h *Handler) completeJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	job, err := h.jobService.MarkComplete(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(job))
}

func (h *Handler) deleteJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": id}))
}
