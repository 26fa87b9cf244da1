package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires reservation endpoints into the router group.
// Booking and cancelling are public; listing is owner-only.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	rg.POST("/owners/:id/bookings", h.Create)

	bookings := rg.Group("/bookings")
	{
		bookings.GET("", authMiddleware, h.List)
		bookings.POST("/:id/cancel", h.Cancel)
	}
}
