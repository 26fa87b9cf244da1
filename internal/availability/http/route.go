package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires availability endpoints into the router group. Rule
// management is owner-only; the slot listing is the public booking surface.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	rules := rg.Group("/availability", authMiddleware)
	{
		rules.POST("", h.CreateRule)
		rules.GET("", h.ListRules)
		rules.DELETE("/:id", h.DeleteRule)
	}

	rg.GET("/owners/:id/slots", h.Slots)
}
