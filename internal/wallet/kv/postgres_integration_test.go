//go:build integration

package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"walletmap/internal/wallet/kv"
	"walletmap/pkg/platform/sentinel"
	"walletmap/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *kv.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = kv.NewPostgresStore(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.postgres.DB.ExecContext(context.Background(), "TRUNCATE wallet_mappings")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestContract() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.SetNX(ctx, "k1", "v1"))
	s.ErrorIs(s.store.SetNX(ctx, "k1", "v2"), sentinel.ErrConflict)

	value, err := s.store.Get(ctx, "k1")
	s.Require().NoError(err)
	s.Equal("v1", value)

	s.Require().NoError(s.store.Set(ctx, "k1", "v3"))
	value, err = s.store.Get(ctx, "k1")
	s.Require().NoError(err)
	s.Equal("v3", value)
}

// ON CONFLICT DO NOTHING must admit exactly one writer per key.
func (s *PostgresStoreSuite) TestConcurrentSetNX() {
	const workers = 16
	ctx := context.Background()

	g, gctx := errgroup.WithContext(ctx)
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			results[i] = s.store.SetNX(gctx, "contended", "worker")
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			s.ErrorIs(err, sentinel.ErrConflict)
		}
	}
	s.Equal(1, wins)
}

func (s *PostgresStoreSuite) TestHealth() {
	s.NoError(s.store.Health(context.Background()))
}
