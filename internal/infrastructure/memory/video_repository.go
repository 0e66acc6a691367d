package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

type VideoRepository struct {
	s *Store
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	owner, ok := r.s.users[v.UploadedBy]
	if !ok {
		return repository.ErrNotFound
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	v.CreatedAt = now()
	v.UpdatedAt = v.CreatedAt
	r.s.videos[v.ID] = cloneVideo(v)
	r.s.videoSeq[v.ID] = r.s.nextSeq()
	owner.VideoCount++
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.FeedVideo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fv := r.s.enrich(v)
	return &fv, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.videos[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	if owner, ok := r.s.users[v.UploadedBy]; ok {
		owner.VideoCount--
		owner.TotalLikes -= len(r.s.likes[id])
	}
	url := v.VideoURL
	delete(r.s.videos, id)
	delete(r.s.videoSeq, id)
	delete(r.s.likes, id)
	delete(r.s.comments, id)
	return url, nil
}

func (r *VideoRepository) Feed(ctx context.Context, q repository.FeedQuery) ([]entity.FeedVideo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var owners map[string]bool
	if q.OwnerIDs != nil {
		owners = make(map[string]bool, len(q.OwnerIDs))
		for _, id := range q.OwnerIDs {
			owners[id] = true
		}
	}

	matched := make([]*entity.Video, 0)
	for _, v := range r.s.videos {
		if owners != nil && !owners[v.UploadedBy] {
			continue
		}
		if q.Search != "" && !matchesSearch(v, q.Search) {
			continue
		}
		if q.Tag != "" && !matchesTag(v.Tags, q.Tag) {
			continue
		}
		matched = append(matched, v)
	}

	r.sortVideos(matched, q.Sort)

	out := make([]entity.FeedVideo, 0, len(matched))
	for _, v := range matched {
		out = append(out, r.s.enrich(v))
	}
	return out, nil
}

func matchesSearch(v *entity.Video, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(v.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(v.Description), needle) {
		return true
	}
	return matchesTag(v.Tags, search)
}

func matchesTag(tags []string, tag string) bool {
	needle := strings.ToLower(tag)
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// sortVideos orders by the requested key with (created_at, insertion order)
// descending as tie-breaks, matching the postgres ORDER BY.
func (r *VideoRepository) sortVideos(videos []*entity.Video, by repository.FeedSort) {
	newer := func(a, b *entity.Video) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.s.videoSeq[a.ID] > r.s.videoSeq[b.ID]
	}
	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		switch by {
		case repository.SortPopular:
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
		case repository.SortLikes:
			if a.LikeCount != b.LikeCount {
				return a.LikeCount > b.LikeCount
			}
		}
		return newer(a, b)
	})
}

func (r *VideoRepository) TrendingTags(ctx context.Context, limit int) ([]repository.TagCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int)
	for _, v := range r.s.videos {
		for _, t := range v.Tags {
			counts[t]++
		}
	}
	tags := make([]repository.TagCount, 0, len(counts))
	for t, n := range counts {
		tags = append(tags, repository.TagCount{Tag: t, Count: n})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

// enrich builds the feed projection; caller holds at least a read lock.
func (s *Store) enrich(v *entity.Video) entity.FeedVideo {
	fv := entity.FeedVideo{Video: *cloneVideo(v)}
	fv.Uploader = s.summaryOf(v.UploadedBy)
	likes := s.likes[v.ID]
	fv.LikedBy = make([]entity.UserSummary, 0, len(likes))
	for _, l := range likes {
		fv.LikedBy = append(fv.LikedBy, s.summaryOf(l.userID))
	}
	return fv
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
