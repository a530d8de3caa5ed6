package handler

import (
	"net/http"

	"angaza/internal/access"
	"angaza/internal/middleware"
	"angaza/internal/service"
	"angaza/pkg/pagination"
	"angaza/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) RegisterRoutes(router *gin.RouterGroup) {
	departments := router.Group("/api/departments", middleware.RequireArea(access.AreaDepartments))
	{
		departments.GET("", h.GetDepartments)
		departments.POST("", h.CreateDepartment)
		departments.PUT("/:id", h.UpdateDepartment)
		departments.DELETE("/:id", h.DeleteDepartment)
	}

	staff := router.Group("/api/staff", middleware.RequireArea(access.AreaStaff))
	{
		staff.GET("", h.GetStaff)
		staff.POST("", h.CreateStaff)
		staff.PUT("/:id", h.UpdateStaff)
		staff.DELETE("/:id", h.DeleteStaff)
	}
}

// GetDepartments lists all departments with staff counts
// @Summary      Get departments
// @Tags         organization
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.DepartmentResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/departments [get]
func (h *OrganizationHandler) GetDepartments(c *gin.Context) {
	departments, err := h.orgService.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, departments))
}

// CreateDepartment creates a department
// @Summary      Create department
// @Tags         organization
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDepartmentRequest  true  "Create Department Payload"
// @Success      201      {object}  response.Response{data=service.DepartmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/departments [post]
func (h *OrganizationHandler) CreateDepartment(c *gin.Context) {
	var req service.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	department, err := h.orgService.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, department))
}

// UpdateDepartment renames a department
// @Summary      Update department
// @Tags         organization
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Department ID"
// @Param        payload  body      service.CreateDepartmentRequest  true  "Update Department Payload"
// @Success      200      {object}  response.Response{data=service.DepartmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/departments/{id} [put]
func (h *OrganizationHandler) UpdateDepartment(c *gin.Context) {
	var req service.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	department, err := h.orgService.UpdateDepartment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, department))
}

// DeleteDepartment removes a department with no assigned staff
// @Summary      Delete department
// @Description  Deletes a department; rejected while staff are still assigned to it
// @Tags         organization
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/departments/{id} [delete]
func (h *OrganizationHandler) DeleteDepartment(c *gin.Context) {
	if err := h.orgService.DeleteDepartment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Department deleted successfully"))
}

// GetStaff lists staff records
// @Summary      Get staff
// @Tags         organization
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/staff [get]
func (h *OrganizationHandler) GetStaff(c *gin.Context) {
	params := pagination.Parse(c)

	staff, total, err := h.orgService.ListStaff(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"staff": staff,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// CreateStaff creates a staff record
// @Summary      Create staff
// @Tags         organization
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateStaffRequest  true  "Create Staff Payload"
// @Success      201      {object}  response.Response{data=service.StaffResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/staff [post]
func (h *OrganizationHandler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	staff, err := h.orgService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, staff))
}

// UpdateStaff updates a staff record
// @Summary      Update staff
// @Tags         organization
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Staff ID"
// @Param        payload  body      service.UpdateStaffRequest  true  "Update Staff Payload"
// @Success      200      {object}  response.Response{data=service.StaffResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/staff/{id} [put]
func (h *OrganizationHandler) UpdateStaff(c *gin.Context) {
	var req service.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	staff, err := h.orgService.UpdateStaff(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

// DeleteStaff soft deletes a staff record
// @Summary      Delete staff
// @Tags         organization
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Staff ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/staff/{id} [delete]
func (h *OrganizationHandler) DeleteStaff(c *gin.Context) {
	if err := h.orgService.DeleteStaff(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Staff member deleted successfully"))
}
