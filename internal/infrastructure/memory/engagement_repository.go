package memory

import (
	"context"

	"github.com/google/uuid"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

type EngagementRepository struct {
	s *Store
}

func (r *EngagementRepository) ToggleLike(ctx context.Context, videoID, userID string) (repository.LikeToggle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out repository.LikeToggle
	v, ok := r.s.videos[videoID]
	if !ok {
		return out, repository.ErrNotFound
	}
	out.OwnerID = v.UploadedBy

	likes := r.s.likes[videoID]
	idx := -1
	for i, l := range likes {
		if l.userID == userID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		r.s.likes[videoID] = append(likes[:idx], likes[idx+1:]...)
		out.Liked = false
		out.Delta = -1
	} else {
		r.s.likes[videoID] = append(likes, likeEntry{userID: userID, seq: r.s.nextSeq()})
		out.Liked = true
		out.Delta = 1
	}
	v.LikeCount += out.Delta
	out.LikeCount = v.LikeCount
	return out, nil
}

func (r *EngagementRepository) AddComment(ctx context.Context, videoID, userID, text string) (*entity.CommentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.videos[videoID]; !ok {
		return nil, repository.ErrNotFound
	}
	c := entity.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		UserID:    userID,
		Text:      text,
		CreatedAt: now(),
	}
	r.s.comments[videoID] = append(r.s.comments[videoID], c)
	return &entity.CommentView{Comment: c, Author: r.s.summaryOf(userID)}, nil
}

func (r *EngagementRepository) GetComment(ctx context.Context, videoID, commentID string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.comments[videoID] {
		if c.ID == commentID {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *EngagementRepository) DeleteComment(ctx context.Context, videoID, commentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.s.comments[videoID]
	for i, c := range list {
		if c.ID == commentID {
			r.s.comments[videoID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *EngagementRepository) ListComments(ctx context.Context, videoID string) ([]entity.CommentView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.videos[videoID]; !ok {
		return nil, repository.ErrNotFound
	}
	list := r.s.comments[videoID]
	out := make([]entity.CommentView, 0, len(list))
	for _, c := range list {
		out = append(out, entity.CommentView{Comment: c, Author: r.s.summaryOf(c.UserID)})
	}
	return out, nil
}

func (r *EngagementRepository) IncrementView(ctx context.Context, videoID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.videos[videoID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	v.ViewCount++
	return v.ViewCount, nil
}

var _ repository.EngagementRepository = (*EngagementRepository)(nil)
