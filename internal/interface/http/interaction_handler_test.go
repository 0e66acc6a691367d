package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipstream/internal/application"
	"clipstream/internal/domain/entity"
	"clipstream/internal/infrastructure/memory"
	handlers "clipstream/internal/interface/http"
	"clipstream/internal/interface/middleware"
	"clipstream/pkg/helpers"
	"clipstream/pkg/validation"
)

type apiEnvelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type handlerEnv struct {
	store  *memory.Store
	jwt    *helpers.JWTManager
	router *gin.Engine
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := memory.NewStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)

	authSvc := application.NewAuthService(store.Users(), jwt, nil, logger)
	engagementSvc := application.NewEngagementService(store.Engagement(), store.Videos(), store.Users(), logger)
	h := handlers.NewInteractionHandler(engagementSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/videos/:id/comments", h.ListComments)
	api.POST("/videos/:id/view", h.View)

	auth := api.Group("/")
	auth.Use(middleware.Auth(jwt, authSvc))
	{
		auth.POST("/videos/:id/like", h.ToggleLike)
		auth.POST("/videos/:id/comments", h.AddComment)
		auth.DELETE("/videos/:id/comments/:commentID", h.DeleteComment)
	}

	return &handlerEnv{store: store, jwt: jwt, router: r}
}

func (e *handlerEnv) seedUser(t *testing.T, username string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	return u
}

func (e *handlerEnv) seedVideo(t *testing.T, ownerID, title string) *entity.Video {
	t.Helper()
	v := &entity.Video{Title: title, UploadedBy: ownerID, VideoURL: "https://example.com/v"}
	require.NoError(t, e.store.Videos().Create(context.Background(), v))
	return v
}

func (e *handlerEnv) tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	token, _, err := e.jwt.GenerateAccessToken(u.ID, u.IsAdmin, "test-session")
	require.NoError(t, err)
	return token
}

func (e *handlerEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestLikeEndpointRequiresAuth(t *testing.T) {
	env := newHandlerEnv(t)
	alice := env.seedUser(t, "alice")
	video := env.seedVideo(t, alice.ID, "clip")

	w := env.do(http.MethodPost, "/api/videos/"+video.ID+"/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLikeEndpointTogglesAndReportsCount(t *testing.T) {
	env := newHandlerEnv(t)
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "clip")
	token := env.tokenFor(t, bob)

	w := env.do(http.MethodPost, "/api/videos/"+video.ID+"/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var like struct {
		IsLiked    bool `json:"isLiked"`
		LikesCount int  `json:"likesCount"`
	}
	envlp := decode(t, w)
	require.NoError(t, json.Unmarshal(envlp.Data, &like))
	assert.True(t, like.IsLiked)
	assert.Equal(t, 1, like.LikesCount)

	w = env.do(http.MethodPost, "/api/videos/"+video.ID+"/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	envlp = decode(t, w)
	require.NoError(t, json.Unmarshal(envlp.Data, &like))
	assert.False(t, like.IsLiked)
	assert.Equal(t, 0, like.LikesCount)
}

func TestLikeEndpointUnknownVideo(t *testing.T) {
	env := newHandlerEnv(t)
	bob := env.seedUser(t, "bob")

	w := env.do(http.MethodPost, "/api/videos/nope/like", env.tokenFor(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	envlp := decode(t, w)
	assert.False(t, envlp.Success)
}

func TestCommentLifecycleOverHTTP(t *testing.T) {
	env := newHandlerEnv(t)
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "clip")
	bobToken := env.tokenFor(t, bob)

	// Empty text is rejected by binding.
	w := env.do(http.MethodPost, "/api/videos/"+video.ID+"/comments", bobToken, gin.H{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/videos/"+video.ID+"/comments", bobToken, gin.H{"text": "great clip"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID     string `json:"id"`
		Text   string `json:"text"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	envlp := decode(t, w)
	require.NoError(t, json.Unmarshal(envlp.Data, &created))
	assert.Equal(t, "great clip", created.Text)
	assert.Equal(t, "bob", created.Author.Username)

	// Listing is public.
	w = env.do(http.MethodGet, "/api/videos/"+video.ID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// A third party cannot delete bob's comment.
	carol := env.seedUser(t, "carol")
	w = env.do(http.MethodDelete, "/api/videos/"+video.ID+"/comments/"+created.ID, env.tokenFor(t, carol), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The author can.
	w = env.do(http.MethodDelete, "/api/videos/"+video.ID+"/comments/"+created.ID, bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestViewEndpointIsPublic(t *testing.T) {
	env := newHandlerEnv(t)
	alice := env.seedUser(t, "alice")
	video := env.seedVideo(t, alice.ID, "clip")

	w := env.do(http.MethodPost, "/api/videos/"+video.ID+"/view", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		ViewCount int `json:"viewCount"`
	}
	envlp := decode(t, w)
	require.NoError(t, json.Unmarshal(envlp.Data, &view))
	assert.Equal(t, 1, view.ViewCount)
}
