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

type ProgramHandler struct {
	programService service.ProgramService
}

func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

func (h *ProgramHandler) RegisterRoutes(router *gin.RouterGroup) {
	programs := router.Group("/api", middleware.RequireArea(access.AreaProjects))
	{
		programs.GET("/programs", h.GetPrograms)
		programs.POST("/programs", h.CreateProgram)

		programs.GET("/projects", h.GetProjects)
		programs.POST("/projects", h.CreateProject)
		programs.PUT("/projects/:id", h.UpdateProject)
		programs.DELETE("/projects/:id", h.DeleteProject)
	}
}

// GetPrograms lists all programs
// @Summary      Get programs
// @Tags         programs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ProgramResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/programs [get]
func (h *ProgramHandler) GetPrograms(c *gin.Context) {
	programs, err := h.programService.ListPrograms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, programs))
}

// CreateProgram creates a program
// @Summary      Create program
// @Tags         programs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProgramRequest  true  "Create Program Payload"
// @Success      201      {object}  response.Response{data=service.ProgramResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req service.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, program))
}

// GetProjects lists projects
// @Summary      Get projects
// @Tags         programs
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/projects [get]
func (h *ProgramHandler) GetProjects(c *gin.Context) {
	params := pagination.Parse(c)

	projects, total, err := h.programService.ListProjects(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"projects": projects,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// CreateProject creates a project under a program
// @Summary      Create project
// @Tags         programs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProjectRequest  true  "Create Project Payload"
// @Success      201      {object}  response.Response{data=service.ProjectResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/projects [post]
func (h *ProgramHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.programService.CreateProject(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, project))
}

// UpdateProject updates a project's details or status
// @Summary      Update project
// @Tags         programs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Project ID"
// @Param        payload  body      service.UpdateProjectRequest  true  "Update Project Payload"
// @Success      200      {object}  response.Response{data=service.ProjectResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/projects/{id} [put]
func (h *ProgramHandler) UpdateProject(c *gin.Context) {
	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.programService.UpdateProject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// DeleteProject removes a project
// @Summary      Delete project
// @Tags         programs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/projects/{id} [delete]
func (h *ProgramHandler) DeleteProject(c *gin.Context) {
	if err := h.programService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Project deleted successfully"))
}
