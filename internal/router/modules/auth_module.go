package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"clipstream/internal/application"
	"clipstream/internal/container"
	handlers "clipstream/internal/interface/http"
	"clipstream/internal/interface/middleware"
	"clipstream/pkg/helpers"
)

// AuthModule wires account endpoints.
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/refresh
// Protected: POST /api/auth/logout, GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Svc     *application.AuthService
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, svc *application.AuthService, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Svc: svc, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Svc))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.GET("/auth/me", m.Handler.Me)
	}
}
