// Package repository encodes the persisted key scheme and exposes
// identity-centric operations over the raw key-value store. Each method maps
// to exactly one store operation; retry and conflict policy belong to the
// coordinators above.
package repository

import (
	"context"
	"errors"
	"fmt"

	"walletmap/internal/wallet/kv"
	"walletmap/internal/wallet/models"
	"walletmap/pkg/platform/sentinel"
)

type Repository struct {
	store kv.Store
}

func New(store kv.Store) (*Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("mapping store is required")
	}
	return &Repository{store: store}, nil
}

// ChainMapping reads the per-chain mapping. Returns sentinel.ErrNotFound when
// the chain has never been provisioned or overridden.
func (r *Repository) ChainMapping(ctx context.Context, identity models.Identity, chainID models.ChainID) (models.Address, error) {
	value, err := r.store.Get(ctx, models.ChainKey(identity, chainID))
	if err != nil {
		return "", err
	}
	return models.Address(value), nil
}

// DefaultMapping reads the identity's canonical address. Returns
// sentinel.ErrNotFound when the identity has never been provisioned.
func (r *Repository) DefaultMapping(ctx context.Context, identity models.Identity) (models.Address, error) {
	value, err := r.store.Get(ctx, models.DefaultKey(identity))
	if err != nil {
		return "", err
	}
	return models.Address(value), nil
}

// WriteChainMappingOnce conditionally stores a per-chain mapping. A false
// return means another writer already resolved this key; that is a normal
// outcome, not an error, and the caller must discard its candidate address.
func (r *Repository) WriteChainMappingOnce(ctx context.Context, identity models.Identity, chainID models.ChainID, address models.Address) (bool, error) {
	err := r.store.SetNX(ctx, models.ChainKey(identity, chainID), string(address))
	if errors.Is(err, sentinel.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// WriteDefaultMappingOnce conditionally stores the canonical address, with
// the same already-present semantics as WriteChainMappingOnce.
func (r *Repository) WriteDefaultMappingOnce(ctx context.Context, identity models.Identity, address models.Address) (bool, error) {
	err := r.store.SetNX(ctx, models.DefaultKey(identity), string(address))
	if errors.Is(err, sentinel.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// OverwriteChainMapping unconditionally replaces a per-chain mapping. Used
// only by the override path; provisioning never overwrites.
func (r *Repository) OverwriteChainMapping(ctx context.Context, identity models.Identity, chainID models.ChainID, address models.Address) error {
	return r.store.Set(ctx, models.ChainKey(identity, chainID), string(address))
}
