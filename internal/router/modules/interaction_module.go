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

// InteractionModule wires likes, comments, and the view counter.
// Public: GET /api/videos/:id/comments, POST /api/videos/:id/view
// Protected: POST /api/videos/:id/like, POST/DELETE comments
// Admin: POST /api/admin/users/:id/reconcile
type InteractionModule struct {
	Handler *handlers.InteractionHandler
	Auth    *application.AuthService
	JWT     *helpers.JWTManager
}

func NewInteractionModule(h *handlers.InteractionHandler, auth *application.AuthService, jwt *helpers.JWTManager) *InteractionModule {
	return &InteractionModule{Handler: h, Auth: auth, JWT: jwt}
}

func (m *InteractionModule) Register(rg *gin.RouterGroup) {
	viewLimiter := middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/videos/:id/comments", viewLimiter, m.Handler.ListComments)
	rg.POST("/videos/:id/view", viewLimiter, m.Handler.View)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Auth))
	{
		likeLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)
		commentLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil)

		auth.POST("/videos/:id/like", likeLimiter, m.Handler.ToggleLike)
		auth.POST("/videos/:id/comments", commentLimiter, m.Handler.AddComment)
		auth.DELETE("/videos/:id/comments/:commentID", m.Handler.DeleteComment)

		admin := auth.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/users/:id/reconcile", m.Handler.Reconcile)
		}
	}
}
