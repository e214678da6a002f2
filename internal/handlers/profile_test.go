package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conversation-service/internal/mocks"
	"conversation-service/internal/models"
	"conversation-service/internal/service"
	"conversation-service/internal/telemetry"
)

func TestGetProfileSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.ProfileServiceMock)
	r := gin.New()
	NewProfileHandler(svc).RegisterRoutes(r)

	svc.On("GetProfile", mock.Anything, "u1").Return(models.Profile{User: models.User{ID: "u1"}, PostCount: 2}, nil).Once()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/u1/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["postCount"])
	svc.AssertExpectations(t)
}

func TestGetProfileNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.ProfileServiceMock)
	r := gin.New()
	NewProfileHandler(svc).RegisterRoutes(r)

	svc.On("GetProfile", mock.Anything, "ghost").Return(nil, &service.Error{Kind: service.KindNotFound, Message: "user not found"}).Once()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/ghost/profile", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", Health(pingerFunc(func(context.Context) error { return nil })))
	r.GET("/down", Health(pingerFunc(func(context.Context) error { return assert.AnError })))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDebugRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	disabled := gin.New()
	RegisterDebugRoutes(disabled, nil, false)
	rec := httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/audit-test", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	pub := new(mocks.PublisherMock)
	pub.On("Publish", mock.Anything, "audit.test", mock.Anything).Return(nil).Once()
	enabled := gin.New()
	RegisterDebugRoutes(enabled, telemetry.NewAuditEmitter(pub, "audit.test", "svc", "test"), true)
	rec = httptest.NewRecorder()
	enabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/audit-test", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	pub.AssertExpectations(t)
}
