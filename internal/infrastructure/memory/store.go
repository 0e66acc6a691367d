// Package memory provides an in-memory implementation of the repository
// interfaces behind a single RWMutex. It backs the test suite and the dev
// profile; semantics mirror the postgres implementations, including the
// deterministic feed tie-break (creation time, then insertion order).
package memory

import (
	"sync"
	"time"

	"clipstream/internal/domain/entity"
)

type likeEntry struct {
	userID string
	seq    int64
}

type followEdge struct {
	follower string
	followee string
}

// Store holds all records. The repository views returned by Users, Videos,
// Social, and Engagement share it.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	videos   map[string]*entity.Video
	videoSeq map[string]int64
	likes    map[string][]likeEntry
	comments map[string][]entity.Comment
	follows  map[followEdge]int64
	seq      int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		videos:   make(map[string]*entity.Video),
		videoSeq: make(map[string]int64),
		likes:    make(map[string][]likeEntry),
		comments: make(map[string][]entity.Comment),
		follows:  make(map[followEdge]int64),
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *Store) Users() *UserRepository            { return &UserRepository{s: s} }
func (s *Store) Videos() *VideoRepository          { return &VideoRepository{s: s} }
func (s *Store) Social() *SocialGraphRepository    { return &SocialGraphRepository{s: s} }
func (s *Store) Engagement() *EngagementRepository { return &EngagementRepository{s: s} }

func (s *Store) summaryOf(userID string) entity.UserSummary {
	if u, ok := s.users[userID]; ok {
		return u.Summary()
	}
	return entity.UserSummary{ID: userID}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func cloneVideo(v *entity.Video) *entity.Video {
	cp := *v
	cp.Tags = append([]string(nil), v.Tags...)
	return &cp
}

func now() time.Time { return time.Now() }
