package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"xflyve-service/internal/http/middleware"
	"xflyve-service/internal/model"
	"xflyve-service/internal/service"
)

type Handler struct {
	authService       *service.AuthService
	driverService     *service.DriverService
	truckService      *service.TruckService
	assignmentService *service.AssignmentService
	jobService        *service.JobService
	workLogService    *service.WorkLogService
	documentService   *service.DocumentService
	log               zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	driverService *service.DriverService,
	truckService *service.TruckService,
	assignmentService *service.AssignmentService,
	jobService *service.JobService,
	workLogService *service.WorkLogService,
	documentService *service.DocumentService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		driverService:     driverService,
		truckService:      truckService,
		assignmentService: assignmentService,
		jobService:        jobService,
		workLogService:    workLogService,
		documentService:   documentService,
		log:               log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
	}

	protected := api.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/auth/profile", h.profile)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(model.RoleAdmin))
	{
		admin.GET("/drivers", h.listDrivers)
		admin.POST("/drivers", h.createDriver)
		admin.DELETE("/drivers/:id", h.deleteDriver)
		admin.GET("/drivers/export", h.exportDrivers)
		admin.GET("/stats", h.systemStats)

		admin.GET("/trucks", h.listTrucks)
		admin.POST("/trucks", h.createTruck)
		admin.GET("/trucks/:id", h.getTruck)
		admin.PUT("/trucks/:id", h.updateTruck)
		admin.DELETE("/trucks/:id", h.deleteTruck)

		admin.GET("/assignments", h.listAssignments)
		admin.POST("/assignments", h.createAssignment)
		admin.PUT("/assignments/:id", h.updateAssignment)
		admin.DELETE("/assignments/:id", h.deleteAssignment)
		admin.POST("/permanent-assignments", h.assignPermanent)

		admin.GET("/jobs", h.listJobs)
		admin.POST("/jobs", h.createJob)
		admin.DELETE("/jobs/:id", h.deleteJob)

		admin.GET("/work-logs", h.listAllWorkLogs)
		admin.GET("/work-logs/export", h.exportWorkLogs)

		admin.GET("/pods", h.listAllPods)
		admin.GET("/pods/download", h.downloadAllPods)
	}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("/my", h.listMyJobs)
		jobs.GET("/:id", h.getJob)
		jobs.PUT("/:id", h.updateJob)
		jobs.PUT("/:id/complete", h.completeJob)
	}

	drivers := protected.Group("/drivers")
	{
		drivers.GET("/:id/jobs", h.listDriverJobs)
		drivers.GET("/:id/assignment", h.getDriverAssignment)
		drivers.GET("/:id/permanent-assignment", h.getPermanentAssignment)
	}

	workLogs := protected.Group("/work-logs")
	{
		workLogs.POST("", h.createWorkLog)
		workLogs.GET("/my", h.listMyWorkLogs)
		workLogs.GET("/:id", h.getWorkLog)
		workLogs.PUT("/:id", h.updateWorkLog)
		workLogs.DELETE("/:id", h.deleteWorkLog)
	}

	pods := protected.Group("/pods")
	{
		pods.POST("", h.uploadPod)
		pods.GET("/my", h.listMyPods)
		pods.GET("/:id", h.getPod)
		pods.PATCH("/:id", h.updatePodNotes)
		pods.DELETE("/:id", h.deletePod)
	}

	diaries := protected.Group("/diaries")
	{
		diaries.POST("", h.uploadDiary)
		diaries.GET("/my", h.listMyDiaries)
		diaries.GET("/:id", h.getDiary)
		diaries.PATCH("/:id", h.updateDiaryNotes)
		diaries.DELETE("/:id", h.deleteDiary)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
