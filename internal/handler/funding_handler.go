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

type FundingHandler struct {
	fundingService service.FundingService
}

func NewFundingHandler(fundingService service.FundingService) *FundingHandler {
	return &FundingHandler{fundingService: fundingService}
}

func (h *FundingHandler) RegisterRoutes(router *gin.RouterGroup) {
	finance := router.Group("/api", middleware.RequireArea(access.AreaFinance))
	{
		finance.GET("/donations", h.GetDonations)
		finance.GET("/donations/:id", h.GetDonation)
		finance.POST("/donations", h.CreateDonation)
		finance.DELETE("/donations/:id", h.DeleteDonation)

		finance.GET("/partners", h.GetPartners)
		finance.POST("/partners", h.CreatePartner)
		finance.DELETE("/partners/:id", h.DeletePartner)

		finance.GET("/finance/summary", h.GetSummary)
	}

	grants := router.Group("/api/grants", middleware.RequireArea(access.AreaGrants))
	{
		grants.GET("", h.GetGrants)
		grants.GET("/:id", h.GetGrant)
		grants.POST("", h.CreateGrant)
		grants.PUT("/:id", h.UpdateGrant)
		grants.DELETE("/:id", h.DeleteGrant)
	}
}

// GetDonations lists recorded donations
// @Summary      Get donations
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/donations [get]
func (h *FundingHandler) GetDonations(c *gin.Context) {
	params := pagination.Parse(c)

	donations, total, err := h.fundingService.ListDonations(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"donations": donations,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetDonation returns a single donation by ID
// @Summary      Get donation by ID
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Donation ID"
// @Success      200  {object}  response.Response{data=service.DonationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/donations/{id} [get]
func (h *FundingHandler) GetDonation(c *gin.Context) {
	donation, err := h.fundingService.GetDonation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, donation))
}

// CreateDonation records a donation
// @Summary      Create donation
// @Tags         finance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDonationRequest  true  "Create Donation Payload"
// @Success      201      {object}  response.Response{data=service.DonationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/donations [post]
func (h *FundingHandler) CreateDonation(c *gin.Context) {
	var req service.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	donation, err := h.fundingService.CreateDonation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, donation))
}

// DeleteDonation removes a donation record
// @Summary      Delete donation
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Donation ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/donations/{id} [delete]
func (h *FundingHandler) DeleteDonation(c *gin.Context) {
	if err := h.fundingService.DeleteDonation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Donation deleted successfully"))
}

// GetGrants lists grants across their lifecycle
// @Summary      Get grants
// @Tags         grants
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/grants [get]
func (h *FundingHandler) GetGrants(c *gin.Context) {
	params := pagination.Parse(c)

	grants, total, err := h.fundingService.ListGrants(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"grants": grants,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// GetGrant returns a single grant by ID
// @Summary      Get grant by ID
// @Tags         grants
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Grant ID"
// @Success      200  {object}  response.Response{data=service.GrantResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/grants/{id} [get]
func (h *FundingHandler) GetGrant(c *gin.Context) {
	grant, err := h.fundingService.GetGrant(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, grant))
}

// CreateGrant records a grant application
// @Summary      Create grant
// @Tags         grants
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateGrantRequest  true  "Create Grant Payload"
// @Success      201      {object}  response.Response{data=service.GrantResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/grants [post]
func (h *FundingHandler) CreateGrant(c *gin.Context) {
	var req service.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	grant, err := h.fundingService.CreateGrant(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, grant))
}

// UpdateGrant updates a grant's status or amount
// @Summary      Update grant
// @Tags         grants
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Grant ID"
// @Param        payload  body      service.UpdateGrantRequest  true  "Update Grant Payload"
// @Success      200      {object}  response.Response{data=service.GrantResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/grants/{id} [put]
func (h *FundingHandler) UpdateGrant(c *gin.Context) {
	var req service.UpdateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	grant, err := h.fundingService.UpdateGrant(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, grant))
}

// DeleteGrant removes a grant record
// @Summary      Delete grant
// @Tags         grants
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Grant ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/grants/{id} [delete]
func (h *FundingHandler) DeleteGrant(c *gin.Context) {
	if err := h.fundingService.DeleteGrant(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Grant deleted successfully"))
}

// GetPartners lists partner organizations
// @Summary      Get partners
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.PartnerResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/partners [get]
func (h *FundingHandler) GetPartners(c *gin.Context) {
	partners, err := h.fundingService.ListPartners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, partners))
}

// CreatePartner records a partner organization
// @Summary      Create partner
// @Tags         finance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePartnerRequest  true  "Create Partner Payload"
// @Success      201      {object}  response.Response{data=service.PartnerResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/partners [post]
func (h *FundingHandler) CreatePartner(c *gin.Context) {
	var req service.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	partner, err := h.fundingService.CreatePartner(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, partner))
}

// DeletePartner removes a partner record
// @Summary      Delete partner
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Partner ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/partners/{id} [delete]
func (h *FundingHandler) DeletePartner(c *gin.Context) {
	if err := h.fundingService.DeletePartner(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Partner deleted successfully"))
}

// GetSummary returns aggregate funding totals
// @Summary      Funding summary
// @Description  Aggregates donation and grant totals for the finance overview
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.FundingSummary}
// @Failure      500  {object}  response.Response
// @Router       /api/finance/summary [get]
func (h *FundingHandler) GetSummary(c *gin.Context) {
	summary, err := h.fundingService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
