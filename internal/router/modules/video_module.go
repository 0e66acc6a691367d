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

// VideoModule wires the video catalog and feeds.
// Public: GET /api/videos, GET /api/videos/:id, GET /api/videos/tags/trending,
// GET /api/videos/suggest
// Protected: POST /api/videos, DELETE /api/videos/:id, GET /api/videos/following
type VideoModule struct {
	Handler *handlers.VideoHandler
	Auth    *application.AuthService
	JWT     *helpers.JWTManager
}

func NewVideoModule(h *handlers.VideoHandler, auth *application.AuthService, jwt *helpers.JWTManager) *VideoModule {
	return &VideoModule{Handler: h, Auth: auth, JWT: jwt}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	feedLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/videos", feedLimiter, m.Handler.Feed)
	rg.GET("/videos/tags/trending", feedLimiter, m.Handler.TrendingTags)
	rg.GET("/videos/suggest", feedLimiter, m.Handler.Suggest)
	rg.GET("/videos/:id", feedLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Auth))
	{
		uploadLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Hour, middleware.KeyByUserID(), nil)
		auth.POST("/videos", uploadLimiter, m.Handler.Upload)
		auth.DELETE("/videos/:id", m.Handler.Delete)
		auth.GET("/videos/following", m.Handler.FollowingFeed)
		auth.GET("/videos/mine", m.Handler.MyVideos)
	}
}
