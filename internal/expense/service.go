package expense

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}

// Service owns the canonical, insertion-ordered expense collection. Every successful
// mutation is persisted exactly once through the repository.
type Service struct {
	repo  Repository
	newID func() int64

	mu       sync.Mutex
	records  []Record
	lastID   int64
	degraded bool
}

type Option func(*Service)

// WithIDSource replaces the clock-derived id source.
func WithIDSource(fn func() int64) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		newID: func() int64 {
			return time.Now().UnixMilli()
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the whole collection with what the repository holds. When the
// repository cannot be read the service starts empty and degraded and never saves.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Warn("loading expenses failed, continuing in memory", "error", err)

		records = []Record{}
		s.degraded = true
	}

	s.records = records
	s.lastID = 0

	for _, r := range records {
		s.lastID = max(s.lastID, r.ID)
	}

	return nil
}

// List returns a copy of the collection in insertion order.
func (s *Service) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

// Get returns the record with the given id.
func (s *Service) Get(id int64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, ErrNotFound
	}

	return s.records[idx], nil
}

func (s *Service) Add(ctx context.Context, d Draft) (Record, error) {
	rec, err := validateDraft(d)
	if err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID()
	s.records = append(s.records, rec)
	s.persist(ctx)

	return rec, nil
}

// Import adds a batch of drafts. Either every draft is valid and all are added with a
// single persistence, or nothing changes.
func (s *Service) Import(ctx context.Context, drafts []Draft) ([]Record, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	recs := make([]Record, len(drafts))

	for i, d := range drafts {
		rec, err := validateDraft(d)
		if err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}

		recs[i] = rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range recs {
		recs[i].ID = s.nextID()
	}

	s.records = append(s.records, recs...)
	s.persist(ctx)

	return recs, nil
}

// Update validates rawText for field and commits it to the record with the given id.
// On a validation error the record is left untouched.
func (s *Service) Update(ctx context.Context, id int64, field Field, rawText, currency string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, ErrNotFound
	}

	next, err := ValidateEdit(field, rawText, s.records[idx], currency)
	if err != nil {
		return s.records[idx], err
	}

	s.records[idx] = next
	s.persist(ctx)

	return next, nil
}

// Remove deletes the record with the given id. It reports false when no record matched.
func (s *Service) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	s.records = slices.Delete(s.records, idx, idx+1)
	s.persist(ctx)

	return true
}

// Degraded reports whether a persistence failure switched the service to in-memory mode.
func (s *Service) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.degraded
}

// persist must be called with mu held.
func (s *Service) persist(ctx context.Context) {
	if s.degraded {
		return
	}

	if err := s.repo.Save(ctx, slices.Clone(s.records)); err != nil {
		slog.Warn("persisting expenses failed, continuing in memory", "error", err)
		s.degraded = true
	}
}

// nextID must be called with mu held.
func (s *Service) nextID() int64 {
	id := s.newID()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	s.lastID = id

	return id
}

func (s *Service) indexOf(id int64) int {
	return slices.IndexFunc(s.records, func(r Record) bool {
		return r.ID == id
	})
}
