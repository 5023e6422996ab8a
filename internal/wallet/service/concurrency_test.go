package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"walletmap/internal/audit"
	"walletmap/internal/wallet/kv"
	"walletmap/internal/wallet/models"
	"walletmap/internal/wallet/repository"
)

// Concurrent provisioning of the same identity and chain set: every caller
// must observe the same canonical address, exactly one value may be durably
// stored per key, and redundant mints are discarded rather than leaked.
func TestConcurrentProvisionFirstWriterWins(t *testing.T) {
	const workers = 32

	store := kv.NewMemoryStore()
	repo, err := repository.New(store)
	require.NoError(t, err)

	issuer := &countingIssuer{}
	svc, err := New(repo, issuer, WithAuditPublisher(audit.NewMemoryPublisher()))
	require.NoError(t, err)

	ctx := context.Background()
	results := make([]*models.ProvisionResult, workers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			result, err := svc.Provision(gctx, "identity-1", []models.ChainID{1, 137})
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	require.NoError(t, g.Wait())

	stored, err := store.Get(ctx, models.DefaultKey("identity-1"))
	require.NoError(t, err)

	for i, result := range results {
		require.Equal(t, models.Address(stored), result.CanonicalAddress, "worker %d", i)
		require.Equal(t, models.Address(stored), result.Chains[1], "worker %d", i)
		require.Equal(t, models.Address(stored), result.Chains[137], "worker %d", i)
	}

	// Exactly three keys: the default plus two chain entries. Lost-race
	// candidates never land in the store.
	require.Equal(t, 3, store.Len())
}

// Mixed concurrent traffic across identities must stay isolated.
func TestConcurrentProvisionDistinctIdentities(t *testing.T) {
	const identities = 16

	store := kv.NewMemoryStore()
	repo, err := repository.New(store)
	require.NoError(t, err)

	issuer := &countingIssuer{}
	svc, err := New(repo, issuer)
	require.NoError(t, err)

	ctx := context.Background()
	results := make([]*models.ProvisionResult, identities)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < identities; i++ {
		identity := models.Identity(string(rune('a'+i)) + "-identity")
		g.Go(func() error {
			result, err := svc.Provision(gctx, identity, []models.ChainID{1})
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[models.Address]bool, identities)
	for _, result := range results {
		require.False(t, seen[result.CanonicalAddress], "canonical addresses must be distinct per identity")
		seen[result.CanonicalAddress] = true
	}

	canonical, _ := issuer.calls()
	require.Equal(t, identities, canonical, "one mint per identity, no contention between identities")
}
