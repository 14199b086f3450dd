package api

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"table_merge/pkg/input"
	"table_merge/pkg/merge"
)

var (
	// ErrForestNotFound is returned for an unknown forest id.
	ErrForestNotFound = errors.New("forest not found")
	// ErrTooManyForests is returned when the registry is full.
	ErrTooManyForests = errors.New("too many forests")
)

// RangeError reports which side of a request named a missing element.
type RangeError struct {
	Field string
	Index int // 1-based
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Field, e.Index, input.ErrIndexOutOfRange)
}

func (e *RangeError) Unwrap() error {
	return input.ErrIndexOutOfRange
}

// checkPair validates 0-based indices a and b against a universe of n.
func checkPair(n int, aField string, a int, bField string, b int) error {
	if a < 0 || a >= n {
		return &RangeError{Field: aField, Index: a + 1}
	}
	if b < 0 || b >= n {
		return &RangeError{Field: bField, Index: b + 1}
	}
	return nil
}

// Session is one forest together with the lock that serialises access to it.
type Session struct {
	ID string

	mu     sync.Mutex
	merger *merge.Merger
}

// Merge applies a 0-based merge of source into destination.
func (s *Session) Merge(destination, source int) (MergeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkPair(s.merger.Forest().Len(), "destination", destination, "source", source); err != nil {
		return MergeResponse{}, err
	}

	start := time.Now()
	groups := s.merger.Forest().Groups()
	size, running := s.merger.Apply(destination, source)
	mergeDuration.Observe(time.Since(start).Seconds())

	result := "merged"
	if s.merger.Forest().Groups() == groups {
		result = "redundant"
	}
	mergesTotal.WithLabelValues(result).Inc()

	return MergeResponse{Size: size, Max: running}, nil
}

// Connected reports whether the 0-based elements a and b share a group.
func (s *Session) Connected(a, b int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkPair(s.merger.Forest().Len(), "a", a, "b", b); err != nil {
		return false, err
	}
	return s.merger.Forest().Connected(a, b), nil
}

// Describe returns a snapshot of the forest.
func (s *Session) Describe() ForestResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.merger.Forest()
	resp := ForestResponse{
		ID:       s.ID,
		Elements: f.Len(),
		Groups:   f.Groups(),
	}
	if f.Len() > 0 {
		running := s.merger.Max()
		resp.Max = &running
	}
	return resp
}

// Registry holds the live forests.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	maxForests int
}

// NewRegistry creates an empty registry holding at most maxForests forests.
// A non-positive limit means unlimited.
func NewRegistry(maxForests int) *Registry {
	return &Registry{
		sessions:   make(map[string]*Session),
		maxForests: maxForests,
	}
}

// Create starts a new forest over weights and returns its session.
func (r *Registry) Create(weights []int64) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxForests > 0 && len(r.sessions) >= r.maxForests {
		return nil, ErrTooManyForests
	}

	s := &Session{
		ID:     uuid.New().String(),
		merger: merge.NewMerger(weights),
	}
	r.sessions[s.ID] = s

	forestsCreated.Inc()
	forestsActive.Inc()
	return s, nil
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrForestNotFound
	}
	return s, nil
}

// Delete discards the forest for id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrForestNotFound
	}
	delete(r.sessions, id)
	forestsActive.Dec()
	return nil
}

// Len returns the number of live forests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
