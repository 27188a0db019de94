package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/application"
	"github.com/campus-halls/service-booking/internal/auth"
	"github.com/campus-halls/service-booking/internal/middleware"
	"github.com/campus-halls/service-booking/internal/response"
)

// HallHandler handles HTTP requests for hall management and browsing.
type HallHandler struct {
	service *application.HallService
}

// NewHallHandler creates a new HallHandler.
func NewHallHandler(service *application.HallService) *HallHandler {
	return &HallHandler{service: service}
}

// RegisterRoutes registers hall routes. Browsing is public, management
// requires an admin token.
func (h *HallHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	halls := r.Group("/api/v1/halls")
	{
		halls.GET("", h.ListHalls)
		halls.GET("/:id", h.GetHall)
	}

	admin := r.Group("/api/v1/halls")
	admin.Use(middleware.Auth(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.POST("", h.CreateHall)
		admin.PUT("/:id", h.UpdateHall)
		admin.PATCH("/:id/status", h.SetHallStatus)
		admin.DELETE("/:id", h.DeactivateHall)
	}
}

// ListHalls handles GET /api/v1/halls. Inactive halls are hidden unless
// include_inactive=true is passed.
func (h *HallHandler) ListHalls(c *gin.Context) {
	var departmentID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid department_id")
			return
		}
		departmentID = &id
	}

	activeOnly := c.Query("include_inactive") != "true"

	halls, err := h.service.ListHalls(c.Request.Context(), departmentID, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, halls)
}

// GetHall handles GET /api/v1/halls/:id.
func (h *HallHandler) GetHall(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hall id")
		return
	}

	hall, err := h.service.GetHall(c.Request.Context(), hallID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, hall)
}

// CreateHall handles POST /api/v1/halls.
func (h *HallHandler) CreateHall(c *gin.Context) {
	var req application.CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hall, err := h.service.CreateHall(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, hall)
}

// UpdateHall handles PUT /api/v1/halls/:id.
func (h *HallHandler) UpdateHall(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hall id")
		return
	}

	var req application.UpdateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hall, err := h.service.UpdateHall(c.Request.Context(), hallID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, hall)
}

type hallStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetHallStatus handles PATCH /api/v1/halls/:id/status.
func (h *HallHandler) SetHallStatus(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hall id")
		return
	}

	var req hallStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hall, err := h.service.SetHallActive(c.Request.Context(), hallID, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, hall)
}

// DeactivateHall handles DELETE /api/v1/halls/:id. Halls are never hard
// deleted because existing bookings reference them.
func (h *HallHandler) DeactivateHall(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hall id")
		return
	}

	hall, err := h.service.SetHallActive(c.Request.Context(), hallID, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, hall)
}
