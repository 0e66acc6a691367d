package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

// EngagementService owns likes, comments, and the view counter, together
// with the denormalized total-likes aggregate on video owners.
type EngagementService struct {
	Engagement repository.EngagementRepository
	Videos     repository.VideoRepository
	Users      repository.UserRepository
	Logger     *logrus.Logger
}

func NewEngagementService(eng repository.EngagementRepository, videos repository.VideoRepository, users repository.UserRepository, logger *logrus.Logger) *EngagementService {
	return &EngagementService{Engagement: eng, Videos: videos, Users: users, Logger: logger}
}

// LikeResult is the wire shape of a like toggle.
type LikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

// ToggleLike flips the caller's like on the video. The like set and the
// video's like_count move together in one store transaction; the owner's
// total_likes is a separate best-effort write. If that write fails the like
// still stands, the drift is logged, and reconciliation converges it later.
func (s *EngagementService) ToggleLike(ctx context.Context, videoID, userID string) (*LikeResult, error) {
	res, err := s.Engagement.ToggleLike(ctx, videoID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err := s.Users.ApplyTotalLikesDelta(ctx, res.OwnerID, res.Delta); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"video_id": videoID,
			"owner_id": res.OwnerID,
			"delta":    res.Delta,
		}).Warn("total-likes aggregate update failed; like recorded, counter will reconcile")
	}

	return &LikeResult{IsLiked: res.Liked, LikesCount: res.LikeCount}, nil
}

// AddComment appends a comment; text must be non-empty after trimming.
func (s *EngagementService) AddComment(ctx context.Context, videoID, userID, text string) (*entity.CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	cv, err := s.Engagement.AddComment(ctx, videoID, userID, text)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return cv, nil
}

// DeleteComment is permitted for the comment author, the video owner, or an
// admin; anyone else gets ErrNotAllowed.
func (s *EngagementService) DeleteComment(ctx context.Context, actor Identity, videoID, commentID string) error {
	video, err := s.Videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	comment, err := s.Engagement.GetComment(ctx, videoID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	isAuthor := comment.UserID == actor.UserID
	isOwner := video.UploadedBy == actor.UserID
	if !isAuthor && !isOwner && !actor.IsAdmin {
		return ErrNotAllowed
	}

	if err := s.Engagement.DeleteComment(ctx, videoID, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *EngagementService) ListComments(ctx context.Context, videoID string) ([]entity.CommentView, error) {
	out, err := s.Engagement.ListComments(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return out, nil
}

// IncrementView bumps the at-least-once anonymous view counter.
func (s *EngagementService) IncrementView(ctx context.Context, videoID string) (int, error) {
	count, err := s.Engagement.IncrementView(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrVideoNotFound
		}
		return 0, err
	}
	return count, nil
}

// AggregateTotals reports the reconciled denormalized counters for a user.
type AggregateTotals struct {
	TotalLikes int `json:"totalLikes"`
	VideoCount int `json:"videoCount"`
}

// ReconcileUserTotals recomputes total_likes and video_count from the like
// rows and video records, converging any drift left by partial failures.
func (s *EngagementService) ReconcileUserTotals(ctx context.Context, userID string) (*AggregateTotals, error) {
	totalLikes, videoCount, err := s.Users.RecountAggregates(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id":     userID,
			"total_likes": totalLikes,
			"video_count": videoCount,
		}).Info("user aggregates reconciled")
	}
	return &AggregateTotals{TotalLikes: totalLikes, VideoCount: videoCount}, nil
}
