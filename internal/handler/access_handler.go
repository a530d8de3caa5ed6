package handler

import (
	"net/http"

	"angaza/internal/access"
	"angaza/internal/middleware"
	"angaza/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccessHandler exposes the role/area policy so clients can build their
// navigation without hardcoding the matrix.
type AccessHandler struct{}

func NewAccessHandler() *AccessHandler {
	return &AccessHandler{}
}

func (h *AccessHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/access/areas", middleware.RequireAuth(), h.GetAllowedAreas)
	router.GET("/api/access/routes/check", middleware.RequireAuth(), h.CheckRoute)
}

// GetAllowedAreas returns the feature areas the caller's role may use
// @Summary      Allowed areas
// @Description  Returns the feature areas the authenticated user's role may access
// @Tags         access
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Failure      401  {object}  response.Response
// @Router       /api/access/areas [get]
func (h *AccessHandler) GetAllowedAreas(c *gin.Context) {
	role := c.GetString("userRole")

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"role":  role,
		"areas": access.AllowedAreas(role),
	}))
}

// CheckRoute reports whether the caller's role may open a client route
// @Summary      Check route access
// @Description  Resolves a client route to its feature area and reports whether the caller's role may open it
// @Tags         access
// @Security     BearerAuth
// @Produce      json
// @Param        route  query     string  true  "Client route, e.g. /distributions"
// @Success      200    {object}  response.Response{data=object}
// @Failure      400    {object}  response.Response
// @Router       /api/access/routes/check [get]
func (h *AccessHandler) CheckRoute(c *gin.Context) {
	route := c.Query("route")
	if route == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "route query parameter is required"))
		return
	}

	role := c.GetString("userRole")

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"route":   route,
		"area":    access.RouteArea(route),
		"allowed": access.CanAccessRoute(role, route),
	}))
}
