// Package signer abstracts the external key-issuing service. Every call
// mints a fresh credential; the mapping layer decides whether a minted
// address is kept or discarded, so implementations must never cache.
package signer

import (
	"context"

	"walletmap/internal/wallet/models"
)

//go:generate mockgen -source=signer.go -destination=signermock/mock_signer.go -package=signermock

// Issuer mints destination-chain addresses.
//
// Issue mints the identity-scoped canonical credential. IssueForChain mints
// from distinct key material scoped to (identity, chain) so repeated
// per-chain rotations never collide with the canonical key or with each
// other. Both must return an address already satisfying the syntax invariant
// or a descriptive error.
type Issuer interface {
	Issue(ctx context.Context, identity models.Identity) (models.Address, error)
	IssueForChain(ctx context.Context, identity models.Identity, chainID models.ChainID) (models.Address, error)
}
