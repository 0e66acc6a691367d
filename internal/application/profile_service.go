package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
	"clipstream/pkg/helpers"
	"clipstream/pkg/media"
)

// ProfileService serves public profiles and the caller's own account
// settings, and owns the follow relationship.
type ProfileService struct {
	Users     repository.UserRepository
	Videos    repository.VideoRepository
	Social    repository.SocialGraphRepository
	GCS       *storage.Client
	GCSBucket string
	Rabbit    *helpers.RabbitPublisher
	Logger    *logrus.Logger
}

func NewProfileService(users repository.UserRepository, videos repository.VideoRepository, social repository.SocialGraphRepository, gcs *storage.Client, gcsBucket string, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, Videos: videos, Social: social, GCS: gcs, GCSBucket: gcsBucket, Rabbit: rabbit, Logger: logger}
}

// ProfileView is the public profile shape: the account with its denormalized
// counters, both edge lists, and the owner's videos newest first.
type ProfileView struct {
	User      *entity.User         `json:"user"`
	Followers []entity.UserSummary `json:"followers"`
	Following []entity.UserSummary `json:"following"`
	Videos    []entity.FeedVideo   `json:"videos"`
}

// GetByUsername assembles the public profile for the named user.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*ProfileView, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Password = ""

	followers, err := s.Social.Followers(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.Social.Following(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	videos, err := s.Videos.Feed(ctx, repository.FeedQuery{
		Sort:     repository.SortNewest,
		OwnerIDs: []string{u.ID},
	})
	if err != nil {
		return nil, err
	}

	return &ProfileView{User: u, Followers: followers, Following: following, Videos: videos}, nil
}

type UpdateProfileInput struct {
	Username *string
	Bio      *string
}

// UpdateProfile applies the provided fields only; nil pointers leave the
// current value untouched.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name != "" && name != u.Username {
			if other, err := s.Users.GetByUsername(ctx, name); err == nil && other.ID != u.ID {
				return nil, ErrUsernameTaken
			} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			u.Username = name
		}
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}

	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	u.Password = ""
	return u, nil
}

// UploadAvatar stores the new image and swaps the profile to its URL. The
// previous avatar is queued for release once the swap is recorded.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (*entity.User, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("media storage not configured")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, body)
	if err != nil {
		return nil, err
	}

	oldAvatar := u.Avatar
	u.Avatar = url
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}

	if oldAvatar != "" {
		job := media.ReleaseJob{URL: oldAvatar, Reason: "avatar replaced"}
		if err := media.PublishRelease(ctx, s.Rabbit, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("avatar release publish failed")
		}
	}
	u.Password = ""
	return u, nil
}

// FollowByUsername resolves the target and creates the edge from the caller.
func (s *ProfileService) FollowByUsername(ctx context.Context, followerID, username string) error {
	target, err := s.resolveUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.Follow(ctx, followerID, target.ID)
}

// UnfollowByUsername resolves the target and removes the edge.
func (s *ProfileService) UnfollowByUsername(ctx context.Context, followerID, username string) error {
	target, err := s.resolveUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.Unfollow(ctx, followerID, target.ID)
}

func (s *ProfileService) resolveUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Follow creates the edge from the caller to the named user. Following
// yourself and following twice are both rejected.
func (s *ProfileService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	err := s.Social.Follow(ctx, followerID, followeeID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrAlreadyFollowing
	}
	return err
}

// Unfollow removes the edge; unfollowing someone you never followed is a
// no-op as long as they exist.
func (s *ProfileService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	err := s.Social.Unfollow(ctx, followerID, followeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
