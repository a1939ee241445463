package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"riskscope/internal/analysis"
	"riskscope/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newRecord(username string, score int, at time.Time) Record {
	return Record{
		ID: uuid.New(),
		Result: analysis.Result{
			Username:  username,
			RiskScore: score,
			RiskLevel: analysis.LevelFromScore(score),
			Timestamp: at,
		},
		CreatedAt: at,
	}
}

func (s *MemoryStoreSuite) TestListRecentOrdering() {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		rec := s.newRecord(name, 10*i, base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(s.store.Save(s.ctx, rec))
	}

	got, err := s.store.ListRecent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("third", got[0].Result.Username)
	s.Equal("second", got[1].Result.Username)
}

func (s *MemoryStoreSuite) TestListRecentLimitLargerThanStore() {
	s.Require().NoError(s.store.Save(s.ctx, s.newRecord("only", 5, time.Now())))

	got, err := s.store.ListRecent(s.ctx, 50)
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *MemoryStoreSuite) TestListRecentEmpty() {
	got, err := s.store.ListRecent(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *MemoryStoreSuite) TestGet() {
	rec := s.newRecord("target", 42, time.Now())
	s.Require().NoError(s.store.Save(s.ctx, rec))

	got, err := s.store.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal("target", got.Result.Username)
	s.Equal(rec.ID, got.ID)
}

func (s *MemoryStoreSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, uuid.New())
	s.Require().Error(err)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestPurge() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.Save(s.ctx, s.newRecord("u", i, time.Now())))
	}

	n, err := s.store.Purge(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	got, err := s.store.ListRecent(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(got)

	n, err = s.store.Purge(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), n)
}
