package handler

import (
	"net/http"
	"strconv"

	"angaza/internal/access"
	"angaza/internal/middleware"
	"angaza/internal/service"
	"angaza/pkg/pagination"
	"angaza/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultLowStockThreshold = 10

type InventoryHandler struct {
	inventoryService service.InventoryService
	categoryService  service.CategoryService
}

func NewInventoryHandler(inventoryService service.InventoryService, categoryService service.CategoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		categoryService:  categoryService,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/api")
	{
		inventory.GET("/resources", middleware.RequireArea(access.AreaInventory), h.GetResources)
		inventory.GET("/resources/low-stock", middleware.RequireArea(access.AreaInventory), h.GetLowStock)
		inventory.GET("/resources/out-of-stock", middleware.RequireArea(access.AreaInventory), h.GetOutOfStock)
		inventory.GET("/resources/:id", middleware.RequireArea(access.AreaInventory), h.GetResource)
		inventory.POST("/resources", middleware.RequireArea(access.AreaInventory), h.CreateResource)
		inventory.PUT("/resources/:id", middleware.RequireArea(access.AreaInventory), h.UpdateResource)
		inventory.DELETE("/resources/:id", middleware.RequireArea(access.AreaInventory), h.DeleteResource)

		inventory.GET("/categories", middleware.RequireArea(access.AreaInventory), h.GetCategories)
		inventory.POST("/categories", middleware.RequireArea(access.AreaInventory), h.CreateCategory)
		inventory.DELETE("/categories/:id", middleware.RequireArea(access.AreaInventory), h.DeleteCategory)

		inventory.GET("/distributions", middleware.RequireArea(access.AreaDistributions), h.GetDistributions)
		inventory.GET("/distributions/:id", middleware.RequireArea(access.AreaDistributions), h.GetDistribution)
		inventory.POST("/distributions", middleware.RequireArea(access.AreaDistributions), h.CreateDistribution)
		inventory.PUT("/distributions/:id", middleware.RequireArea(access.AreaDistributions), h.UpdateDistribution)
		inventory.DELETE("/distributions/:id", middleware.RequireArea(access.AreaDistributions), h.DeleteDistribution)
	}
}

// GetResources handles retrieving paginated inventory resources
// @Summary      Get resources
// @Description  Retrieves a paginated list of resources with current stock
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        search  query     string  false  "Search by resource name"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/resources [get]
func (h *InventoryHandler) GetResources(c *gin.Context) {
	params := pagination.Parse(c)
	search := c.Query("search")

	resources, total, err := h.inventoryService.ListResources(c.Request.Context(), params.Page, params.Limit, search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"resources": resources,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetLowStock lists resources at or below the stock threshold
// @Summary      Get low-stock resources
// @Description  Retrieves resources with stock above zero but at or below the threshold
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        threshold  query     int  false  "Stock threshold (default 10)"
// @Success      200        {object}  response.Response{data=[]service.ResourceResponse}
// @Failure      500        {object}  response.Response
// @Router       /api/resources/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", strconv.Itoa(defaultLowStockThreshold)))
	if err != nil || threshold < 1 {
		threshold = defaultLowStockThreshold
	}

	resources, err := h.inventoryService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, resources))
}

// GetOutOfStock lists resources with zero remaining stock
// @Summary      Get out-of-stock resources
// @Description  Retrieves resources whose quantity has reached zero
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ResourceResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/resources/out-of-stock [get]
func (h *InventoryHandler) GetOutOfStock(c *gin.Context) {
	resources, err := h.inventoryService.OutOfStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, resources))
}

// GetResource returns a single resource by ID
// @Summary      Get resource by ID
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Resource ID"
// @Success      200  {object}  response.Response{data=service.ResourceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/resources/{id} [get]
func (h *InventoryHandler) GetResource(c *gin.Context) {
	resource, err := h.inventoryService.GetResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, resource))
}

// CreateResource creates a new inventory resource entry
// @Summary      Create resource
// @Description  Creates a new resource entry in the inventory
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateResourceRequest  true  "Create Resource Payload"
// @Success      201      {object}  response.Response{data=service.ResourceResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/resources [post]
func (h *InventoryHandler) CreateResource(c *gin.Context) {
	var req service.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	resource, err := h.inventoryService.CreateResource(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, resource))
}

// UpdateResource updates an existing resource's metadata
// @Summary      Update resource
// @Description  Updates an existing resource's details by ID
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Resource ID"
// @Param        payload  body      service.UpdateResourceRequest  true  "Update Resource Payload"
// @Success      200      {object}  response.Response{data=service.ResourceResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/resources/{id} [put]
func (h *InventoryHandler) UpdateResource(c *gin.Context) {
	var req service.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	resource, err := h.inventoryService.UpdateResource(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, resource))
}

// DeleteResource removes a resource entry softly
// @Summary      Delete resource
// @Description  Soft deletes a resource by ID
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Resource ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/resources/{id} [delete]
func (h *InventoryHandler) DeleteResource(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.inventoryService.DeleteResource(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Resource deleted successfully"))
}

// GetCategories lists all resource categories
// @Summary      Get categories
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.CategoryResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/categories [get]
func (h *InventoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateCategory creates a new resource category
// @Summary      Create category
// @Description  Creates a category; names are unique across the inventory
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Response{data=service.CategoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/categories [post]
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// DeleteCategory removes a category if no resource references it
// @Summary      Delete category
// @Description  Deletes a category; rejected while resources still reference it
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/categories/{id} [delete]
func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.categoryService.DeleteCategory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Category deleted successfully"))
}

// GetDistributions lists distributions, optionally filtered by resource category
// @Summary      Get distributions
// @Tags         distributions
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Param        category  query     string  false  "Filter by resource category"
// @Success      200       {object}  response.Response{data=object}
// @Failure      500       {object}  response.Response
// @Router       /api/distributions [get]
func (h *InventoryHandler) GetDistributions(c *gin.Context) {
	params := pagination.Parse(c)
	category := c.Query("category")

	distributions, total, err := h.inventoryService.ListDistributions(c.Request.Context(), params.Page, params.Limit, category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"distributions": distributions,
		"total":         total,
		"page":          params.Page,
		"limit":         params.Limit,
	}))
}

// GetDistribution returns a single distribution by ID
// @Summary      Get distribution by ID
// @Tags         distributions
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Distribution ID"
// @Success      200  {object}  response.Response{data=service.DistributionResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/distributions/{id} [get]
func (h *InventoryHandler) GetDistribution(c *gin.Context) {
	distribution, err := h.inventoryService.GetDistribution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, distribution))
}

// CreateDistribution records a distribution and decrements stock atomically
// @Summary      Record distribution
// @Description  Records a distribution and decrements the resource's stock in one transaction; rejected when stock is insufficient
// @Tags         distributions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RecordDistributionRequest  true  "Record Distribution Payload"
// @Success      201      {object}  response.Response{data=service.DistributionResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/distributions [post]
func (h *InventoryHandler) CreateDistribution(c *gin.Context) {
	var req service.RecordDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	distribution, err := h.inventoryService.RecordDistribution(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, distribution))
}

// UpdateDistribution transitions a pending distribution's status
// @Summary      Update distribution status
// @Description  Completes or cancels a pending distribution; cancelling restores the stock
// @Tags         distributions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Distribution ID"
// @Param        payload  body      service.UpdateDistributionRequest  true  "Update Distribution Payload"
// @Success      200      {object}  response.Response{data=service.DistributionResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/distributions/{id} [put]
func (h *InventoryHandler) UpdateDistribution(c *gin.Context) {
	var req service.UpdateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	distribution, err := h.inventoryService.UpdateDistributionStatus(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, distribution))
}

// DeleteDistribution removes a distribution; pending ones restore stock first
// @Summary      Delete distribution
// @Description  Deletes a distribution; pending ones restock the resource, completed ones are immutable
// @Tags         distributions
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Distribution ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/distributions/{id} [delete]
func (h *InventoryHandler) DeleteDistribution(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.inventoryService.DeleteDistribution(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Distribution deleted successfully"))
}
