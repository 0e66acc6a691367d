package application_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"clipstream/internal/application"
	"clipstream/internal/domain/entity"
	"clipstream/internal/infrastructure/memory"
	"clipstream/pkg/helpers"
)

type testEnv struct {
	store      *memory.Store
	auth       *application.AuthService
	videos     *application.VideoService
	feeds      *application.FeedService
	profiles   *application.ProfileService
	engagement *application.EngagementService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := store.Users()
	videos := store.Videos()
	social := store.Social()
	engagement := store.Engagement()

	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)

	return &testEnv{
		store:      store,
		auth:       application.NewAuthService(users, jwt, nil, logger),
		videos:     application.NewVideoService(videos, nil, "", nil, "", nil, logger),
		feeds:      application.NewFeedService(videos, social, nil, logger, 0),
		profiles:   application.NewProfileService(users, videos, social, nil, "", nil, logger),
		engagement: application.NewEngagementService(engagement, videos, users, logger),
	}
}

func (e *testEnv) seedUser(t *testing.T, username string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	return u
}

func (e *testEnv) seedAdmin(t *testing.T, username string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: username + "@example.com", Password: "x", IsAdmin: true}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	return u
}

func (e *testEnv) seedVideo(t *testing.T, ownerID, title string, tags ...string) *entity.Video {
	t.Helper()
	v := &entity.Video{Title: title, UploadedBy: ownerID, Tags: tags, VideoURL: "https://example.com/" + title}
	require.NoError(t, e.store.Videos().Create(context.Background(), v))
	return v
}

func ident(u *entity.User) application.Identity {
	return application.Identity{UserID: u.ID, IsAdmin: u.IsAdmin}
}
