// Package store provides the in-memory session store: concurrency-safe keyed
// storage for interview sessions plus a short-lived staging area for parsed
// resumes awaiting interview creation.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hirevox/interview-engine/internal/domain"
)

// resumeEntry is a staged resume with its staging time, for expiry sweeps.
type resumeEntry struct {
	profile  domain.ResumeProfile
	stagedAt time.Time
}

// Store is an in-memory session store. The lock protects the maps from
// concurrent structural mutation; it is never held across LLM calls. Session
// field mutation between Get and Update assumes a single writer per session,
// enforced by the HTTP layer's request model.
//
// The store is plain constructed state: build one in the composition root
// and inject it wherever sessions are needed.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	resumes  map[string]resumeEntry
}

// New creates an empty store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*domain.Session),
		resumes:  make(map[string]resumeEntry),
	}
}

// Create allocates and stores a new NOT_STARTED session around the inputs.
func (s *Store) Create(resume domain.ResumeProfile, job domain.JobSpec) *domain.Session {
	session := domain.NewSession(resume, job)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

// Get returns the session, or ErrSessionNotFound.
func (s *Store) Get(id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Update replaces the stored session keyed by its id. Unknown ids are a
// no-op: callers are expected to have fetched the session first.
func (s *Store) Update(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		s.sessions[session.ID] = session
	}
}

// Delete removes a session, reporting whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// List returns all sessions, optionally filtered by state.
func (s *Store) List(state domain.InterviewState) []*domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Session
	for _, session := range s.sessions {
		if state != "" && session.State != state {
			continue
		}
		out = append(out, session)
	}
	return out
}

// StageResume stores a parsed resume ahead of interview creation and returns
// its staging id.
func (s *Store) StageResume(profile domain.ResumeProfile) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[id] = resumeEntry{profile: profile, stagedAt: time.Now().UTC()}
	return id
}

// GetResume returns a staged resume, or ErrResumeNotFound.
func (s *Store) GetResume(id string) (domain.ResumeProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.resumes[id]
	if !ok {
		return domain.ResumeProfile{}, domain.ErrResumeNotFound
	}
	return entry.profile, nil
}

// DeleteResume removes a staged resume, reporting whether it existed.
func (s *Store) DeleteResume(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resumes[id]; !ok {
		return false
	}
	delete(s.resumes, id)
	return true
}

// CleanupExpired removes terminal sessions older than maxAge and staged
// resumes older than maxAge regardless of state, returning the count removed.
// Non-terminal sessions are never deleted here: an interview in progress must
// not vanish from under an active caller.
func (s *Store) CleanupExpired(maxAge time.Duration) int {
	now := time.Now().UTC()
	cleaned := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if now.Sub(session.CreatedAt) <= maxAge {
			continue
		}
		if session.State != domain.StateCompleted && session.State != domain.StateCancelled {
			continue
		}
		delete(s.sessions, id)
		cleaned++
	}

	for id, entry := range s.resumes {
		if now.Sub(entry.stagedAt) > maxAge {
			delete(s.resumes, id)
			cleaned++
		}
	}

	return cleaned
}
