package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clipstream/internal/application"
	"clipstream/internal/interface/middleware"
	"clipstream/pkg/response"
	"clipstream/pkg/validation"
)

type VideoHandler struct {
	Videos   *application.VideoService
	Feeds    *application.FeedService
	Logger   *logrus.Logger
	MaxBytes int64
}

func NewVideoHandler(videos *application.VideoService, feeds *application.FeedService, logger *logrus.Logger, maxBytes int64) *VideoHandler {
	return &VideoHandler{Videos: videos, Feeds: feeds, Logger: logger, MaxBytes: maxBytes}
}

type uploadVideoForm struct {
	Title       string `form:"title" binding:"required,min=1,max=150"`
	Description string `form:"description" binding:"max=2000"`
	Tags        string `form:"tags"`
}

// Upload POST /api/videos (auth required, multipart)
func (h *VideoHandler) Upload(c *gin.Context) {
	if h.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)
	}

	var form uploadVideoForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	fh, err := c.FormFile("video")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "video file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read video file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	v, err := h.Videos.Upload(c.Request.Context(), c.GetString(middleware.CtxUserID), application.UploadVideoInput{
		Title:       form.Title,
		Description: form.Description,
		Tags:        application.ParseTags(form.Tags),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "video uploaded", nil)
}

// Get GET /api/videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
	fv, err := h.Videos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fv, "video", nil)
}

// Delete DELETE /api/videos/:id (auth required; owner or admin)
func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.Videos.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "video deleted", nil)
}

// Feed GET /api/videos?search=&tag=&sort=
func (h *VideoHandler) Feed(c *gin.Context) {
	sort := application.ParseFeedSort(c.Query("sort"))
	videos, err := h.Feeds.GlobalFeed(c.Request.Context(), c.Query("search"), c.Query("tag"), sort)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "feed", gin.H{"count": len(videos)})
}

// FollowingFeed GET /api/videos/following (auth required)
func (h *VideoHandler) FollowingFeed(c *gin.Context) {
	videos, err := h.Feeds.FollowingFeed(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "following feed", gin.H{"count": len(videos)})
}

// MyVideos GET /api/videos/mine (auth required)
func (h *VideoHandler) MyVideos(c *gin.Context) {
	videos, err := h.Feeds.ProfileFeed(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "my videos", gin.H{"count": len(videos)})
}

// TrendingTags GET /api/videos/tags/trending
func (h *VideoHandler) TrendingTags(c *gin.Context) {
	tags, err := h.Feeds.TrendingTags(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags, "trending tags", nil)
}

// Suggest GET /api/videos/suggest?q=&size=
func (h *VideoHandler) Suggest(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Videos.Suggest(c.Request.Context(), q, size)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "suggestions", gin.H{"count": len(hits)})
}
