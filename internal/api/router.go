package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openbookings/appointment-backend/internal/auth"
	"github.com/openbookings/appointment-backend/internal/availability"
	availabilityHttp "github.com/openbookings/appointment-backend/internal/availability/http"
	"github.com/openbookings/appointment-backend/internal/owner"
	ownerHttp "github.com/openbookings/appointment-backend/internal/owner/http"
	"github.com/openbookings/appointment-backend/internal/reservation"
	reservationHttp "github.com/openbookings/appointment-backend/internal/reservation/http"
)

// Config holds the services and settings the router assembles.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	OwnerService        owner.Service
	AvailabilityService availability.Service
	ReservationService  reservation.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing). Booking pages are
	// served from other origins, so the public endpoints must be reachable
	// cross-origin.
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		config.AllowOrigins = []string{
			"http://localhost:3000", // Local booking page
			"http://localhost:8081", // Swagger
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware: Validates if the request contains a valid owner JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	ownerHandler := ownerHttp.NewHandler(cfg.OwnerService, cfg.JWTManager)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		ownerHttp.RegisterRoutes(v1, ownerHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
