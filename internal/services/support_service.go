package services

import (
	"sync"

	"medishare/internal/clock"
	"medishare/internal/collection"
	"medishare/internal/domain"
	"medishare/internal/repos"
	"medishare/internal/support"
)

type SupportService struct {
	Queries *repos.QueryRepo
	Clock   clock.Clock

	mu sync.Mutex
}

func NewSupportService(queries *repos.QueryRepo, clk clock.Clock) *SupportService {
	if clk == nil {
		clk = clock.System()
	}
	return &SupportService{Queries: queries, Clock: clk}
}

// Inbox returns the matching queries and the per-status counts of all queries.
func (s *SupportService) Inbox(c support.Criteria) ([]domain.Query, support.Counts, error) {
	if err := c.Validate(); err != nil {
		return nil, support.Counts{}, err
	}
	all, err := s.Queries.All()
	if err != nil {
		return nil, support.Counts{}, err
	}
	return support.Filter(all, c), support.Count(all), nil
}

func (s *SupportService) Get(id string) (domain.Query, error) {
	all, err := s.Queries.All()
	if err != nil {
		return domain.Query{}, err
	}
	return collection.Find(all, id, domain.QueryID, "query")
}

func (s *SupportService) Reply(id, author, text string) (domain.Query, error) {
	now := s.Clock.Now()
	return s.apply(id, func(qs []domain.Query) ([]domain.Query, error) {
		return support.Reply(qs, id, author, text, now)
	})
}

func (s *SupportService) Resolve(id string) (domain.Query, error) {
	return s.apply(id, func(qs []domain.Query) ([]domain.Query, error) {
		return support.Resolve(qs, id)
	})
}

func (s *SupportService) Reopen(id string) (domain.Query, error) {
	return s.apply(id, func(qs []domain.Query) ([]domain.Query, error) {
		return collection.Update(qs, id, domain.QueryID, "query", support.Reopen)
	})
}

func (s *SupportService) apply(id string, op func([]domain.Query) ([]domain.Query, error)) (domain.Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Queries.All()
	if err != nil {
		return domain.Query{}, err
	}
	next, err := op(all)
	if err != nil {
		return domain.Query{}, err
	}
	q, err := collection.Find(next, id, domain.QueryID, "query")
	if err != nil {
		return domain.Query{}, err
	}
	return q, s.Queries.Save(q)
}
