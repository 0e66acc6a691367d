package memory

import (
	"context"
	"sort"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

type SocialGraphRepository struct {
	s *Store
}

func (r *SocialGraphRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[followeeID]; !ok {
		return repository.ErrNotFound
	}
	edge := followEdge{follower: followerID, followee: followeeID}
	if _, ok := r.s.follows[edge]; ok {
		return repository.ErrDuplicate
	}
	r.s.follows[edge] = r.s.nextSeq()
	return nil
}

func (r *SocialGraphRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[followeeID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.follows, followEdge{follower: followerID, followee: followeeID})
	return nil
}

func (r *SocialGraphRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type edgeAt struct {
		id  string
		seq int64
	}
	edges := make([]edgeAt, 0)
	for e, seq := range r.s.follows {
		if e.follower == userID {
			edges = append(edges, edgeAt{id: e.followee, seq: seq})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].seq < edges[j].seq })

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.id)
	}
	return ids, nil
}

func (r *SocialGraphRepository) Followers(ctx context.Context, userID string) ([]entity.UserSummary, error) {
	return r.summaries(userID, false)
}

func (r *SocialGraphRepository) Following(ctx context.Context, userID string) ([]entity.UserSummary, error) {
	return r.summaries(userID, true)
}

func (r *SocialGraphRepository) summaries(userID string, following bool) ([]entity.UserSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type edgeAt struct {
		id  string
		seq int64
	}
	edges := make([]edgeAt, 0)
	for e, seq := range r.s.follows {
		if following && e.follower == userID {
			edges = append(edges, edgeAt{id: e.followee, seq: seq})
		}
		if !following && e.followee == userID {
			edges = append(edges, edgeAt{id: e.follower, seq: seq})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].seq < edges[j].seq })

	out := make([]entity.UserSummary, 0, len(edges))
	for _, e := range edges {
		out = append(out, r.s.summaryOf(e.id))
	}
	return out, nil
}

var _ repository.SocialGraphRepository = (*SocialGraphRepository)(nil)
