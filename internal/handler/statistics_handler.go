package handler

import (
	"net/http"
	"strconv"

	"angaza/internal/access"
	"angaza/internal/middleware"
	"angaza/internal/service"
	"angaza/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultStatsLimit = 10

type StatisticsHandler struct {
	statsService service.StatisticsService
}

func NewStatisticsHandler(statsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/api/stats", middleware.RequireArea(access.AreaReports))
	{
		stats.GET("/categories", h.GetCategoryStats)
		stats.GET("/distributions", h.GetDistributionStats)
	}
}

// GetCategoryStats returns per-category usage statistics
// @Summary      Category statistics
// @Description  Aggregates stock value and distribution usage per resource category, sorted by usage
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        limit     query     int     false  "Maximum number of categories (default 10)"
// @Param        category  query     string  false  "Restrict to a single category"
// @Success      200       {object}  response.Response{data=[]model.CategoryStat}
// @Failure      500       {object}  response.Response
// @Router       /api/stats/categories [get]
func (h *StatisticsHandler) GetCategoryStats(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultStatsLimit)))
	if err != nil || limit < 1 {
		limit = defaultStatsLimit
	}
	category := c.Query("category")

	stats, err := h.statsService.CategoryStats(c.Request.Context(), limit, category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetDistributionStats returns aggregate distribution totals
// @Summary      Distribution statistics
// @Description  Aggregates distribution counts, quantities and value, optionally per category
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        category  query     string  false  "Restrict to a single category"
// @Success      200       {object}  response.Response{data=model.DistributionStats}
// @Failure      500       {object}  response.Response
// @Router       /api/stats/distributions [get]
func (h *StatisticsHandler) GetDistributionStats(c *gin.Context) {
	category := c.Query("category")

	stats, err := h.statsService.DistributionStats(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
