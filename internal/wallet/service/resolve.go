package service

import (
	"context"
	"errors"

	"walletmap/internal/wallet/models"
	derrors "walletmap/pkg/domain-errors"
	"walletmap/pkg/platform/sentinel"
)

// ResolveSource reports where a resolved address came from.
type ResolveSource string

const (
	// SourceChain means the chain had its own stored mapping, either from
	// provisioning or a later override.
	SourceChain ResolveSource = "chain"
	// SourceDefault means the chain had no entry of its own and fell back to
	// the identity's canonical address.
	SourceDefault ResolveSource = "default"
)

// Resolve is the read-only lookup: it never mints and never writes. A chain
// with no entry of its own falls back to the canonical default mapping.
func (s *Service) Resolve(ctx context.Context, identity models.Identity, chainID models.ChainID) (models.Address, ResolveSource, error) {
	if identity.IsZero() {
		return "", "", derrors.New(derrors.CodeBadRequest, "identity is required")
	}

	address, err := s.repo.ChainMapping(ctx, identity, chainID)
	if err == nil {
		return address, SourceChain, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return "", "", storeFailure(err)
	}

	address, err = s.repo.DefaultMapping(ctx, identity)
	if err == nil {
		return address, SourceDefault, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", "", ErrNoMapping
	}
	return "", "", storeFailure(err)
}
