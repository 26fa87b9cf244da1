package app

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbookings/appointment-backend/internal/api"
	"github.com/openbookings/appointment-backend/internal/auth"
	"github.com/openbookings/appointment-backend/internal/availability"
	"github.com/openbookings/appointment-backend/internal/clock"
	"github.com/openbookings/appointment-backend/internal/owner"
	"github.com/openbookings/appointment-backend/internal/reservation"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *slog.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.System{}

	// Owner Module
	ownerRepo := owner.NewPgxRepository(cfg.DBPool)
	ownerService := owner.NewService(ownerRepo, passwordHasher)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(
		reservationRepo,
		ownerService,
		reservation.CryptoCodeGenerator{},
		clk,
		cfg.Logger,
	)

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo, reservationService, ownerService, clk)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		OwnerService:        ownerService,
		AvailabilityService: availabilityService,
		ReservationService:  reservationService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
