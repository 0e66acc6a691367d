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

type InteractionHandler struct {
	Svc    *application.EngagementService
	Logger *logrus.Logger
}

func NewInteractionHandler(svc *application.EngagementService, logger *logrus.Logger) *InteractionHandler {
	return &InteractionHandler{Svc: svc, Logger: logger}
}

type addCommentRequest struct {
	Text string `json:"text" binding:"required,commenttext"`
}

// ToggleLike POST /api/videos/:id/like (auth required)
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	res, err := h.Svc.ToggleLike(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "like toggled", nil)
}

// AddComment POST /api/videos/:id/comments (auth required)
func (h *InteractionHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cv, err := h.Svc.AddComment(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cv, "comment added", nil)
}

// ListComments GET /api/videos/:id/comments
func (h *InteractionHandler) ListComments(c *gin.Context) {
	comments, err := h.Svc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments", gin.H{"count": len(comments)})
}

// DeleteComment DELETE /api/videos/:id/comments/:commentID (auth required)
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	err := h.Svc.DeleteComment(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), c.Param("commentID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}

// View POST /api/videos/:id/view
func (h *InteractionHandler) View(c *gin.Context) {
	count, err := h.Svc.IncrementView(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"viewCount": count}, "view recorded", nil)
}

// Reconcile POST /api/admin/users/:id/reconcile (admin only)
func (h *InteractionHandler) Reconcile(c *gin.Context) {
	totals, err := h.Svc.ReconcileUserTotals(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, totals, "aggregates reconciled", nil)
}
