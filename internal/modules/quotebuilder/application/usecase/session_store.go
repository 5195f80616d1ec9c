package usecase

import (
	"strings"
	"sync"
	"time"

	quotes "mealQuote/internal/modules/quotes/domain"
)

const (
	defaultSessionTTL     = 12 * time.Hour
	defaultSessionEntries = 1024
)

// sessionStore remembers the last submitted form per browser session for retries.
type sessionStore struct {
	mu         sync.Mutex
	entries    map[string]sessionEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type sessionEntry struct {
	form     quotes.QuoteFormData
	storedAt time.Time
}

func newSessionStore(ttl time.Duration, maxEntries int) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if maxEntries <= 0 {
		maxEntries = defaultSessionEntries
	}
	return &sessionStore{
		entries:    make(map[string]sessionEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *sessionStore) remember(session string, form quotes.QuoteFormData) {
	session = strings.TrimSpace(session)
	if session == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.entries[session] = sessionEntry{form: form, storedAt: now}
	if len(s.entries) > s.maxEntries {
		s.pruneLocked(now)
	}
}

func (s *sessionStore) last(session string) (quotes.QuoteFormData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[strings.TrimSpace(session)]
	if !ok {
		return quotes.QuoteFormData{}, false
	}
	if s.now().Sub(entry.storedAt) > s.ttl {
		delete(s.entries, strings.TrimSpace(session))
		return quotes.QuoteFormData{}, false
	}
	return entry.form, true
}

// pruneLocked drops expired sessions, then the oldest ones until under maxEntries.
func (s *sessionStore) pruneLocked(now time.Time) {
	for session, entry := range s.entries {
		if now.Sub(entry.storedAt) > s.ttl {
			delete(s.entries, session)
		}
	}
	for len(s.entries) > s.maxEntries {
		oldest := ""
		var oldestAt time.Time
		for session, entry := range s.entries {
			if oldest == "" || entry.storedAt.Before(oldestAt) {
				oldest, oldestAt = session, entry.storedAt
			}
		}
		delete(s.entries, oldest)
	}
}
