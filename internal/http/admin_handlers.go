package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"xflyve-service/internal/export"
	"xflyve-service/internal/http/middleware"
	"xflyve-service/internal/service"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) listDrivers(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(drivers))
}

func (h *Handler) createDriver(c *gin.Context) {
	var req service.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(driver))
}

func (h *Handler) deleteDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), principal.UserID, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": id}))
}

func (h *Handler) exportDrivers(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	buf, filename, err := export.DriversToExcel(drivers)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}

func (h *Handler) systemStats(c *gin.Context) {
	stats, err := h.driverService.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) listTrucks(c *gin.Context) {
	trucks, err := h.truckService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(trucks))
}

func (h *Handler) createTruck(c *gin.Context) {
	var req service.CreateTruckInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(truck))
}

func (h *Handler) getTruck(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	truck, err := h.truckService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(truck))
}

func (h *Handler) updateTruck(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.UpdateTruckInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(truck))
}

func (h *Handler) deleteTruck(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.truckService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": id}))
}
