package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clipstream/internal/application"
	"clipstream/internal/interface/middleware"
	"clipstream/pkg/response"
	"clipstream/pkg/validation"
)

type ProfileHandler struct {
	Svc            *application.ProfileService
	Logger         *logrus.Logger
	MaxAvatarBytes int64
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger, maxAvatarBytes int64) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger, MaxAvatarBytes: maxAvatarBytes}
}

type updateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,uname"`
	Bio      *string `json:"bio" binding:"omitempty,max=300"`
}

// Get GET /api/profiles/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	view, err := h.Svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "profile", nil)
}

// Update PUT /api/profiles/me (auth required)
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserID), application.UpdateProfileInput{
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

// UploadAvatar POST /api/profiles/me/avatar (auth required, multipart)
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	if h.MaxAvatarBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxAvatarBytes)
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString(middleware.CtxUserID), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "avatar updated", nil)
}

// Follow POST /api/profiles/:username/follow (auth required)
func (h *ProfileHandler) Follow(c *gin.Context) {
	if err := h.Svc.FollowByUsername(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("username")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"following": true}, "followed", nil)
}

// Unfollow DELETE /api/profiles/:username/follow (auth required)
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	if err := h.Svc.UnfollowByUsername(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("username")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"following": false}, "unfollowed", nil)
}
