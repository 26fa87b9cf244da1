package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openbookings/appointment-backend/internal/auth"
	"github.com/openbookings/appointment-backend/internal/owner"
)

type Handler struct {
	ownerService owner.Service
	jwtManager   *auth.JWTManager
}

func NewHandler(ownerService owner.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		ownerService: ownerService,
		jwtManager:   jwtManager,
	}
}

// Register handles the owner registration process.
// It validates the payload and creates a new account if the email is unique.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()

	o, err := h.ownerService.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, owner.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, owner.ErrEmailRequired), errors.Is(err, owner.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create owner"})
		}
		return
	}

	resp := MeResponse{
		Owner: NewOwnerResponse(o),
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates an owner using email and password.
// On success, it returns a JWT access token and the owner profile.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()

	o, err := h.ownerService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, owner.ErrInvalidCredentials),
			errors.Is(err, owner.ErrNotFound),
			errors.Is(err, owner.ErrInactiveOwner):
			// For security reasons, do not reveal which condition failed
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(o.ID, o.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate token",
		})
		return
	}

	resp := LoginResponse{
		AccessToken: token,
		Owner:       NewOwnerResponse(o),
	}

	c.JSON(http.StatusOK, resp)
}

// Me retrieves the profile of the currently authenticated owner.
// It relies on the owner ID extracted from the JWT context.
func (h *Handler) Me(c *gin.Context) {
	ownerID := auth.GetOwnerID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	o, err := h.ownerService.GetByID(ctx, ownerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner not found"})
		return
	}

	resp := MeResponse{
		Owner: NewOwnerResponse(o),
	}

	c.JSON(http.StatusOK, resp)
}
