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

// ProfileModule wires public profiles, profile settings, and the follow graph.
// Public: GET /api/profiles/:username
// Protected: PUT /api/profiles/me, POST /api/profiles/me/avatar,
// POST/DELETE /api/profiles/:username/follow
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Auth    *application.AuthService
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, auth *application.AuthService, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, Auth: auth, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	profileLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/profiles/:username", profileLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Auth))
	{
		followLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil)
		auth.PUT("/profiles/me", m.Handler.Update)
		auth.POST("/profiles/me/avatar", m.Handler.UploadAvatar)
		auth.POST("/profiles/:username/follow", followLimiter, m.Handler.Follow)
		auth.DELETE("/profiles/:username/follow", followLimiter, m.Handler.Unfollow)
	}
}
