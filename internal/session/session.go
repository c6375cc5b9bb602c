// Package session keeps the per-user state that surrounds the stateless skin
// tone pipeline: the uploaded image, the detected and selected tones, the
// current palette, and the most recent adjusted render.
//
// Sessions are keyed by a random UUID and owned exclusively by the Store.
// Callers receive copies, so a Session value never changes underneath them.
package session

import (
	"errors"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ironsheep/skintone-mcp/internal/imaging"
	"github.com/ironsheep/skintone-mcp/internal/skintone"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one user's analysis bundle.
type Session struct {
	ID     string             `json:"session_id"`
	Source string             `json:"source"`
	Info   imaging.ImageInfo  `json:"image"`
	Detect skintone.Detection `json:"detection"`

	// Selected is the tone currently applied. It starts as the detected
	// category and follows every adjustment, recognized or not.
	Selected string   `json:"selected"`
	Palette  []string `json:"palette"`

	Original image.Image `json:"-"`
	Adjusted image.Image `json:"-"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`

	// generation increments with every new original image.
	generation uint64
}

// Current returns the adjusted image when there is one, else the original.
func (s *Session) Current() image.Image {
	if s.Adjusted != nil {
		return s.Adjusted
	}
	return s.Original
}

func (s *Session) clone() *Session {
	c := *s
	c.Palette = append([]string(nil), s.Palette...)
	return &c
}

// Store holds sessions in memory. The zero value is not usable; call
// NewStore.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store holding at most limit sessions, each expiring ttl
// after its last update. Non-positive values disable the respective bound.
func NewStore(limit int, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		limit:    limit,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Analyze runs detection on img and stores the result. An empty id, or one
// that does not name a live session, starts a new session; otherwise the
// existing session is reset to the new image and its adjusted render is
// dropped.
func (st *Store) Analyze(id, source string, img image.Image, info imaging.ImageInfo) *Session {
	d := skintone.Detect(img)
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked(now)

	s, ok := st.sessions[id]
	if !ok {
		s = &Session{ID: uuid.NewString(), Created: now}
		st.sessions[s.ID] = s
	}
	s.generation++
	s.Source = source
	s.Info = info
	s.Original = img
	s.Adjusted = nil
	s.Detect = d
	s.Selected = string(d.Category)
	s.Palette = skintone.ColorRecommendations(string(d.Category))
	s.Updated = now

	st.evictLocked(s.ID)
	return s.clone()
}

// Adjust re-renders the session's original image toward target and makes
// target the selected tone.
func (st *Store) Adjust(id, target string) (*Session, skintone.Adjustment, error) {
	st.mu.RLock()
	s, ok := st.liveLocked(id)
	var (
		original   image.Image
		generation uint64
	)
	if ok {
		original, generation = s.Original, s.generation
	}
	st.mu.RUnlock()
	if !ok {
		return nil, skintone.Adjustment{}, ErrNotFound
	}

	adj := skintone.Adjust(original, target)

	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok = st.liveLocked(id)
	if !ok {
		return nil, skintone.Adjustment{}, ErrNotFound
	}
	if s.generation != generation {
		// The session was re-analyzed while we worked; keep its new image.
		return s.clone(), adj, nil
	}
	s.Adjusted = adj.Image
	s.Selected = target
	s.Palette = skintone.ColorRecommendations(target)
	s.Updated = st.now()
	return s.clone(), adj, nil
}

// Get returns a copy of the session.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.liveLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

// Reset discards the adjusted render and restores the detected tone.
func (st *Store) Reset(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.liveLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.Adjusted = nil
	s.Selected = string(s.Detect.Category)
	s.Palette = skintone.ColorRecommendations(s.Selected)
	s.Updated = st.now()
	return s.clone(), nil
}

// Delete removes a session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of stored sessions, including expired ones not yet
// pruned.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) liveLocked(id string) (*Session, bool) {
	s, ok := st.sessions[id]
	if !ok || st.expired(s, st.now()) {
		return nil, false
	}
	return s, true
}

func (st *Store) expired(s *Session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.Updated) > st.ttl
}

func (st *Store) pruneLocked(now time.Time) {
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
		}
	}
}

// evictLocked drops the least recently updated sessions beyond the limit,
// never the one named by keep.
func (st *Store) evictLocked(keep string) {
	if st.limit <= 0 || len(st.sessions) <= st.limit {
		return
	}
	others := make([]*Session, 0, len(st.sessions))
	for id, s := range st.sessions {
		if id != keep {
			others = append(others, s)
		}
	}
	sort.Slice(others, func(i, j int) bool {
		return others[i].Updated.Before(others[j].Updated)
	})
	for _, s := range others[:len(st.sessions)-st.limit] {
		delete(st.sessions, s.ID)
	}
}
