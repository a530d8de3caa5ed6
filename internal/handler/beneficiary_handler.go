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

type BeneficiaryHandler struct {
	beneficiaryService service.BeneficiaryService
}

func NewBeneficiaryHandler(beneficiaryService service.BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaryService: beneficiaryService}
}

func (h *BeneficiaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	beneficiaries := router.Group("/api/beneficiaries", middleware.RequireArea(access.AreaBeneficiaries))
	{
		beneficiaries.GET("", h.GetBeneficiaries)
		beneficiaries.GET("/:id", h.GetBeneficiary)
		beneficiaries.POST("", h.CreateBeneficiary)
		beneficiaries.PUT("/:id", h.UpdateBeneficiary)
		beneficiaries.DELETE("/:id", h.DeleteBeneficiary)
	}
}

// GetBeneficiaries lists registered beneficiaries
// @Summary      Get beneficiaries
// @Description  Retrieves a paginated list of beneficiaries, searchable by name
// @Tags         beneficiaries
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        search  query     string  false  "Search by beneficiary name"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/beneficiaries [get]
func (h *BeneficiaryHandler) GetBeneficiaries(c *gin.Context) {
	params := pagination.Parse(c)
	search := c.Query("search")

	beneficiaries, total, err := h.beneficiaryService.ListBeneficiaries(c.Request.Context(), params.Page, params.Limit, search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"beneficiaries": beneficiaries,
		"total":         total,
		"page":          params.Page,
		"limit":         params.Limit,
	}))
}

// GetBeneficiary returns a single beneficiary by ID
// @Summary      Get beneficiary by ID
// @Tags         beneficiaries
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Beneficiary ID"
// @Success      200  {object}  response.Response{data=service.BeneficiaryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/beneficiaries/{id} [get]
func (h *BeneficiaryHandler) GetBeneficiary(c *gin.Context) {
	beneficiary, err := h.beneficiaryService.GetBeneficiary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, beneficiary))
}

// CreateBeneficiary registers a new beneficiary
// @Summary      Create beneficiary
// @Tags         beneficiaries
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBeneficiaryRequest  true  "Create Beneficiary Payload"
// @Success      201      {object}  response.Response{data=service.BeneficiaryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/beneficiaries [post]
func (h *BeneficiaryHandler) CreateBeneficiary(c *gin.Context) {
	var req service.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	beneficiary, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, beneficiary))
}

// UpdateBeneficiary updates a beneficiary's record
// @Summary      Update beneficiary
// @Tags         beneficiaries
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                            true  "Beneficiary ID"
// @Param        payload  body      service.UpdateBeneficiaryRequest  true  "Update Beneficiary Payload"
// @Success      200      {object}  response.Response{data=service.BeneficiaryResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/beneficiaries/{id} [put]
func (h *BeneficiaryHandler) UpdateBeneficiary(c *gin.Context) {
	var req service.UpdateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	beneficiary, err := h.beneficiaryService.UpdateBeneficiary(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, beneficiary))
}

// DeleteBeneficiary soft deletes a beneficiary record
// @Summary      Delete beneficiary
// @Tags         beneficiaries
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Beneficiary ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/beneficiaries/{id} [delete]
func (h *BeneficiaryHandler) DeleteBeneficiary(c *gin.Context) {
	if err := h.beneficiaryService.DeleteBeneficiary(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Beneficiary deleted successfully"))
}
