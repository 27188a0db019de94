package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/application"
	"github.com/campus-halls/service-booking/internal/auth"
	"github.com/campus-halls/service-booking/internal/middleware"
	"github.com/campus-halls/service-booking/internal/response"
)

// DepartmentHandler handles HTTP requests for department management.
type DepartmentHandler struct {
	service  *application.DepartmentService
	bookings *application.BookingService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(service *application.DepartmentService, bookings *application.BookingService) *DepartmentHandler {
	return &DepartmentHandler{service: service, bookings: bookings}
}

// RegisterRoutes registers department routes.
func (h *DepartmentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.Auth(jwtManager)

	departments := r.Group("/api/v1/departments")
	{
		departments.GET("", h.ListDepartments)
		departments.GET("/:id", h.GetDepartment)
		departments.GET("/:id/bookings", authMW, h.DepartmentBookings)
	}

	admin := r.Group("/api/v1/departments")
	admin.Use(authMW, middleware.RequireRole(auth.RoleAdmin))
	{
		admin.POST("", h.CreateDepartment)
		admin.PUT("/:id", h.UpdateDepartment)
	}
}

// ListDepartments handles GET /api/v1/departments.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, departments)
}

// GetDepartment handles GET /api/v1/departments/:id.
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid department id")
		return
	}

	dept, err := h.service.FindByID(c.Request.Context(), departmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dept)
}

// DepartmentBookings handles GET /api/v1/departments/:id/bookings.
func (h *DepartmentHandler) DepartmentBookings(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid department id")
		return
	}

	page, limit := parsePagination(c)

	bookings, total, err := h.bookings.GetDepartmentBookings(c.Request.Context(), departmentID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, bookings, total, page, limit)
}

// CreateDepartment handles POST /api/v1/departments.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req application.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dept, err := h.service.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dept)
}

// UpdateDepartment handles PUT /api/v1/departments/:id.
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid department id")
		return
	}

	var req application.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dept, err := h.service.UpdateDepartment(c.Request.Context(), departmentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dept)
}
