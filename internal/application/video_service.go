package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
	"clipstream/pkg/helpers"
	"clipstream/pkg/media"
)

// VideoService handles the video lifecycle: upload through the media
// boundary, retrieval, and deletion with best-effort media release.
type VideoService struct {
	Videos        repository.VideoRepository
	GCS           *storage.Client
	GCSBucket     string
	ES            *elasticsearch.Client
	ESVideosIndex string
	Rabbit        *helpers.RabbitPublisher
	Logger        *logrus.Logger
}

func NewVideoService(videos repository.VideoRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esVideosIndex string, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *VideoService {
	return &VideoService{
		Videos:        videos,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
		ES:            es,
		ESVideosIndex: esVideosIndex,
		Rabbit:        rabbit,
		Logger:        logger,
	}
}

type UploadVideoInput struct {
	Title       string
	Description string
	Tags        []string
	Filename    string
	ContentType string
	Body        io.Reader
}

// ParseTags splits a comma-separated tag field, trimming whitespace and
// dropping empties.
func ParseTags(csv string) []string {
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Upload stores the binary through the media boundary, records the returned
// URL verbatim, and indexes the video for suggestions.
func (s *VideoService) Upload(ctx context.Context, ownerID string, in UploadVideoInput) (*entity.Video, error) {
	url, err := s.uploadToGCS(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}

	v := &entity.Video{
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    url,
		UploadedBy:  ownerID,
		Tags:        in.Tags,
	}
	if err := s.Videos.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	_ = s.indexVideo(ctx, v)
	return v, nil
}

func (s *VideoService) uploadToGCS(ctx context.Context, ownerID string, in UploadVideoInput) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("media storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(in.Filename))
	objectPath := filepath.ToSlash(filepath.Join("videos", ownerID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, in.ContentType, in.Body)
}

func (s *VideoService) Get(ctx context.Context, id string) (*entity.FeedVideo, error) {
	fv, err := s.Videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return fv, nil
}

// Delete removes a video on behalf of its owner or an admin. The record
// delete is authoritative; releasing the stored binary and the search index
// entry are best-effort follow-ups whose failure is only logged.
func (s *VideoService) Delete(ctx context.Context, actor Identity, id string) error {
	fv, err := s.Videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	if fv.UploadedBy != actor.UserID && !actor.IsAdmin {
		return ErrNotAllowed
	}

	videoURL, err := s.Videos.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if videoURL != "" {
		job := media.ReleaseJob{URL: videoURL, Reason: "video deleted"}
		if err := media.PublishRelease(ctx, s.Rabbit, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", id).Warn("media release publish failed")
		}
	}
	s.removeIndex(ctx, id)
	return nil
}

func (s *VideoService) indexVideo(ctx context.Context, v *entity.Video) error {
	if s.ES == nil || s.ESVideosIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          v.ID,
		"title":       v.Title,
		"description": v.Description,
		"tags":        v.Tags,
		"uploaded_by": v.UploadedBy,
		"created_at":  v.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESVideosIndex, DocumentID: v.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", v.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("video_id", v.ID).Warn("es index response error")
	}
	return nil
}

func (s *VideoService) removeIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESVideosIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Suggest performs a quick multi_match lookup against the video index; the
// authoritative search stays in the global feed query.
func (s *VideoService) Suggest(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "tags"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESVideosIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
