package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"seo_article_generator/generator"
)

// sessionEntry serializes access to one session; a session has at most one
// in-flight generation.
type sessionEntry struct {
	mu   sync.Mutex
	sess *generator.Session
}

// sessionStore keeps sessions in memory and drops them after ttl of inactivity.
type sessionStore struct {
	items *cache.Cache
}

func newStore(ttl time.Duration) *sessionStore {
	cleanup := ttl / 4
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &sessionStore{items: cache.New(ttl, cleanup)}
}

func (s *sessionStore) create(gen generator.ArticleGenerator) *sessionEntry {
	id := uuid.NewString()
	e := &sessionEntry{sess: generator.NewSession(id, gen)}
	s.items.Set(id, e, cache.DefaultExpiration)
	return e
}

// get returns the session and extends its lifetime.
func (s *sessionStore) get(id string) (*sessionEntry, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	e := v.(*sessionEntry)
	s.items.Set(id, e, cache.DefaultExpiration)
	return e, true
}

func (s *sessionStore) count() int {
	return s.items.ItemCount()
}
