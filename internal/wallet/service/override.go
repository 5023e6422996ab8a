package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"walletmap/internal/audit"
	"walletmap/internal/wallet/models"
	derrors "walletmap/pkg/domain-errors"
	"walletmap/pkg/platform/sentinel"
	"walletmap/pkg/requestcontext"
)

// Override force-replaces a single chain's mapping for an already-provisioned
// identity. An empty newAddress mints a fresh chain-scoped address instead.
//
// Unlike provisioning this is deliberately not idempotent: each call stores a
// new value, replacing the previous one. That is the key-rotation contract;
// callers needing exactly-once semantics must deduplicate above this layer.
// The canonical default mapping is never touched, so chains that were not
// explicitly overridden keep resolving to the same address.
func (s *Service) Override(ctx context.Context, identity models.Identity, chainID models.ChainID, newAddress models.Address) (*models.OverrideResult, error) {
	if identity.IsZero() {
		return nil, derrors.New(derrors.CodeBadRequest, "identity is required")
	}

	ctx, span := s.tracer.Start(ctx, "wallet.Override")
	defer span.End()
	span.SetAttributes(
		attribute.String("wallet.identity", identity.String()),
		attribute.Int64("wallet.chain_id", int64(chainID)),
	)

	// An override can never be the first mapping operation for an identity.
	if _, err := s.repo.DefaultMapping(ctx, identity); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countOverride("not_provisioned")
			return nil, ErrNotProvisioned
		}
		s.countOverride("error")
		return nil, storeFailure(err)
	}

	minted := newAddress == ""
	if minted {
		if s.metrics != nil {
			s.metrics.IssuerCallsTotal.WithLabelValues("chain").Inc()
		}
		candidate, err := s.issuer.IssueForChain(ctx, identity, chainID)
		if err != nil {
			s.countOverride("error")
			return nil, issuerFailure(err)
		}
		if err := candidate.Validate(); err != nil {
			s.countOverride("error")
			return nil, derrors.New(derrors.CodeUnavailable, "address issuer returned a malformed address")
		}
		newAddress = candidate
	} else if err := newAddress.Validate(); err != nil {
		s.countOverride("invalid_address")
		return nil, err
	}

	if err := s.repo.OverwriteChainMapping(ctx, identity, chainID, newAddress); err != nil {
		s.countOverride("error")
		return nil, storeFailure(err)
	}
	s.countOverride("ok")

	s.logger.InfoContext(ctx, "wallet mapping overridden",
		"request_id", requestcontext.RequestID(ctx),
		"actor", requestcontext.Actor(ctx),
		"identity", identity,
		"chain_id", chainID,
		"minted", minted,
	)
	s.publishAudit(ctx, audit.Event{
		ID:        uuid.NewString(),
		Action:    audit.ActionOverridden,
		Identity:  identity.String(),
		ChainIDs:  []uint64{uint64(chainID)},
		Address:   newAddress.String(),
		Minted:    minted,
		Actor:     requestcontext.Actor(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: time.Now(),
	})

	return &models.OverrideResult{ChainID: chainID, Address: newAddress}, nil
}

func (s *Service) countOverride(outcome string) {
	if s.metrics != nil {
		s.metrics.OverridesTotal.WithLabelValues(outcome).Inc()
	}
}
