package router

import (
	"clipstream/internal/application"
	"clipstream/internal/container"
	pginfra "clipstream/internal/infrastructure/postgres"
	handlers "clipstream/internal/interface/http"
	"clipstream/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	videos := pginfra.NewVideoRepository(pool)
	social := pginfra.NewSocialGraphRepository(pool)
	engagement := pginfra.NewEngagementRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), container.GetRedis(), logger)
	videoSvc := application.NewVideoService(videos, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESVideosIndex, container.GetRabbitPub(), logger)
	feedSvc := application.NewFeedService(videos, social, container.GetRedis(), logger, cfg.TrendingTagsTTL)
	profileSvc := application.NewProfileService(users, videos, social, container.GetGCS(), cfg.GCSBucket, container.GetRabbitPub(), logger)
	engagementSvc := application.NewEngagementService(engagement, videos, users, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	videoHandler := handlers.NewVideoHandler(videoSvc, feedSvc, logger, cfg.MaxVideoUploadBytes)
	profileHandler := handlers.NewProfileHandler(profileSvc, logger, cfg.MaxAvatarUploadBytes)
	interactionHandler := handlers.NewInteractionHandler(engagementSvc, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(authHandler, authSvc, jwt))
	r.Add(modules.NewVideoModule(videoHandler, authSvc, jwt))
	r.Add(modules.NewProfileModule(profileHandler, authSvc, jwt))
	r.Add(modules.NewInteractionModule(interactionHandler, authSvc, jwt))
}
