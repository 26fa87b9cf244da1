package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbookings/appointment-backend/internal/auth"
	"github.com/openbookings/appointment-backend/internal/owner"
)

const testOwnerID = "3f2f4f70-0a52-4b11-9f3e-6a1f1f6f2a10"

type stubOwnerService struct {
	registerFn func(ctx context.Context, email, password, displayName string) (*owner.Owner, error)
	loginFn    func(ctx context.Context, email, password string) (*owner.Owner, error)
	getFn      func(ctx context.Context, id string) (*owner.Owner, error)
}

func (s *stubOwnerService) Register(ctx context.Context, email, password, displayName string) (*owner.Owner, error) {
	return s.registerFn(ctx, email, password, displayName)
}

func (s *stubOwnerService) Login(ctx context.Context, email, password string) (*owner.Owner, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubOwnerService) GetByID(ctx context.Context, id string) (*owner.Owner, error) {
	return s.getFn(ctx, id)
}

func newTestRouter(service owner.Service) (*gin.Engine, *auth.JWTManager) {
	gin.SetMode(gin.TestMode)
	jwtManager := auth.NewJWTManager("test-secret", 30*time.Minute)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(service, jwtManager), auth.AuthRequired(jwtManager))
	return r, jwtManager
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleOwner() *owner.Owner {
	name := "Alice"
	return &owner.Owner{
		ID:          testOwnerID,
		Email:       "alice@example.com",
		DisplayName: &name,
		IsActive:    true,
		CreatedAt:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegisterHandler(t *testing.T) {
	validBody := RegisterRequest{
		Email:       "alice@example.com",
		Password:    "supersecret",
		DisplayName: "Alice",
	}

	t.Run("Created", func(t *testing.T) {
		service := &stubOwnerService{registerFn: func(_ context.Context, email, password, displayName string) (*owner.Owner, error) {
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, "supersecret", password)
			assert.Equal(t, "Alice", displayName)
			return sampleOwner(), nil
		}}
		router, _ := newTestRouter(service)

		w := doJSON(t, router, http.MethodPost, "/v1/auth/register", validBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp MeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testOwnerID, resp.Owner.ID)
		assert.Equal(t, "alice@example.com", resp.Owner.Email)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		service := &stubOwnerService{registerFn: func(context.Context, string, string, string) (*owner.Owner, error) {
			return nil, owner.ErrEmailAlreadyUsed
		}}
		router, _ := newTestRouter(service)

		w := doJSON(t, router, http.MethodPost, "/v1/auth/register", validBody, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Short Password Rejected By Binding", func(t *testing.T) {
		router, _ := newTestRouter(&stubOwnerService{})

		body := validBody
		body.Password = "short"
		w := doJSON(t, router, http.MethodPost, "/v1/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Email Rejected By Binding", func(t *testing.T) {
		router, _ := newTestRouter(&stubOwnerService{})

		body := validBody
		body.Email = "not-an-email"
		w := doJSON(t, router, http.MethodPost, "/v1/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	validBody := LoginRequest{Email: "alice@example.com", Password: "supersecret"}

	t.Run("Returns Token", func(t *testing.T) {
		service := &stubOwnerService{loginFn: func(context.Context, string, string) (*owner.Owner, error) {
			return sampleOwner(), nil
		}}
		router, jwtManager := newTestRouter(service)

		w := doJSON(t, router, http.MethodPost, "/v1/auth/login", validBody, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, testOwnerID, resp.Owner.ID)

		claims, err := jwtManager.ParseAndValidate(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, testOwnerID, claims.OwnerID)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("Bad Credentials", func(t *testing.T) {
		service := &stubOwnerService{loginFn: func(context.Context, string, string) (*owner.Owner, error) {
			return nil, owner.ErrInvalidCredentials
		}}
		router, _ := newTestRouter(service)

		w := doJSON(t, router, http.MethodPost, "/v1/auth/login", validBody, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid email or password", resp["error"], "the reason must stay hidden")
	})

	t.Run("Inactive Account Looks The Same", func(t *testing.T) {
		service := &stubOwnerService{loginFn: func(context.Context, string, string) (*owner.Owner, error) {
			return nil, owner.ErrInactiveOwner
		}}
		router, _ := newTestRouter(service)

		w := doJSON(t, router, http.MethodPost, "/v1/auth/login", validBody, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMeHandler(t *testing.T) {
	service := &stubOwnerService{getFn: func(_ context.Context, id string) (*owner.Owner, error) {
		if id != testOwnerID {
			return nil, owner.ErrNotFound
		}
		return sampleOwner(), nil
	}}

	t.Run("With Valid Token", func(t *testing.T) {
		router, jwtManager := newTestRouter(service)
		token, err := jwtManager.GenerateAccessToken(testOwnerID, "alice@example.com")
		require.NoError(t, err)

		w := doJSON(t, router, http.MethodGet, "/v1/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp MeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice@example.com", resp.Owner.Email)
	})

	t.Run("Missing Token", func(t *testing.T) {
		router, _ := newTestRouter(service)

		w := doJSON(t, router, http.MethodGet, "/v1/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		router, _ := newTestRouter(service)

		w := doJSON(t, router, http.MethodGet, "/v1/me", nil, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token Signed With Another Secret", func(t *testing.T) {
		router, _ := newTestRouter(service)
		foreign := auth.NewJWTManager("other-secret", 30*time.Minute)
		token, err := foreign.GenerateAccessToken(testOwnerID, "alice@example.com")
		require.NoError(t, err)

		w := doJSON(t, router, http.MethodGet, "/v1/me", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
