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

// Provision ensures every requested chain resolves to an address for the
// identity, minting at most one canonical address per identity. Re-running
// the same request is idempotent: already-stored mappings are read back, not
// rewritten.
//
// A storage or issuer failure aborts the call; chain mappings already written
// by earlier iterations remain durable, which only makes a retry cheaper
// since each chain resolves independently.
func (s *Service) Provision(ctx context.Context, identity models.Identity, chainIDs []models.ChainID) (*models.ProvisionResult, error) {
	if identity.IsZero() {
		return nil, derrors.New(derrors.CodeBadRequest, "identity is required")
	}
	if len(chainIDs) == 0 {
		return nil, ErrEmptyChainSet
	}

	ctx, span := s.tracer.Start(ctx, "wallet.Provision")
	defer span.End()
	span.SetAttributes(
		attribute.String("wallet.identity", identity.String()),
		attribute.Int("wallet.chain_count", len(chainIDs)),
	)

	start := time.Now()
	canonical, minted, err := s.resolveCanonical(ctx, identity)
	if err != nil {
		s.countProvision("error")
		return nil, err
	}

	result := &models.ProvisionResult{
		CanonicalAddress: canonical,
		Chains:           make(map[models.ChainID]models.Address, len(chainIDs)),
	}
	for _, chainID := range chainIDs {
		if _, done := result.Chains[chainID]; done {
			// Duplicate chain IDs in one request resolve once.
			continue
		}
		resolved, err := s.resolveChain(ctx, identity, chainID, canonical)
		if err != nil {
			s.countProvision("error")
			return nil, err
		}
		result.Chains[chainID] = resolved
	}

	if s.metrics != nil {
		s.metrics.ObserveProvisionDuration(time.Since(start))
	}
	if minted {
		s.countProvision("minted")
	} else {
		s.countProvision("reused")
	}

	s.logger.InfoContext(ctx, "wallet provisioned",
		"request_id", requestcontext.RequestID(ctx),
		"identity", identity,
		"chains", len(result.Chains),
		"minted", minted,
	)
	s.publishAudit(ctx, audit.Event{
		ID:        uuid.NewString(),
		Action:    audit.ActionProvisioned,
		Identity:  identity.String(),
		ChainIDs:  chainIDList(result.Chains),
		Address:   canonical.String(),
		Minted:    minted,
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: time.Now(),
	})

	return result, nil
}

// resolveCanonical returns the identity's canonical address, minting and
// conditionally storing one when absent. On a lost race the freshly minted
// candidate is discarded and the stored value is read back as authoritative.
func (s *Service) resolveCanonical(ctx context.Context, identity models.Identity) (models.Address, bool, error) {
	existing, err := s.repo.DefaultMapping(ctx, identity)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return "", false, storeFailure(err)
	}

	candidate, err := s.issue(ctx, identity)
	if err != nil {
		return "", false, err
	}

	written, err := s.repo.WriteDefaultMappingOnce(ctx, identity, candidate)
	if err != nil {
		return "", false, storeFailure(err)
	}
	if written {
		return candidate, true, nil
	}

	// Another caller won the race. The store exposes no delete, so the key
	// must be readable now; a NotFound here means the backend broke its
	// contract.
	winner, err := s.repo.DefaultMapping(ctx, identity)
	if err != nil {
		return "", false, storeFailure(err)
	}
	if s.metrics != nil {
		s.metrics.IssuerDiscardsTotal.Inc()
	}
	s.logger.WarnContext(ctx, "canonical mint lost write race, candidate discarded",
		"identity", identity,
	)
	return winner, false, nil
}

// resolveChain settles one per-chain mapping. An existing entry always wins,
// which also preserves any prior override for that chain.
func (s *Service) resolveChain(ctx context.Context, identity models.Identity, chainID models.ChainID, canonical models.Address) (models.Address, error) {
	existing, err := s.repo.ChainMapping(ctx, identity, chainID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return "", storeFailure(err)
	}

	written, err := s.repo.WriteChainMappingOnce(ctx, identity, chainID, canonical)
	if err != nil {
		return "", storeFailure(err)
	}
	if written {
		return canonical, nil
	}

	winner, err := s.repo.ChainMapping(ctx, identity, chainID)
	if err != nil {
		return "", storeFailure(err)
	}
	return winner, nil
}

// issue mints a canonical candidate and guards the syntax invariant before
// anything can be stored.
func (s *Service) issue(ctx context.Context, identity models.Identity) (models.Address, error) {
	if s.metrics != nil {
		s.metrics.IssuerCallsTotal.WithLabelValues("canonical").Inc()
	}
	candidate, err := s.issuer.Issue(ctx, identity)
	if err != nil {
		return "", issuerFailure(err)
	}
	if err := candidate.Validate(); err != nil {
		return "", derrors.New(derrors.CodeUnavailable, "address issuer returned a malformed address")
	}
	return candidate, nil
}

func (s *Service) countProvision(outcome string) {
	if s.metrics != nil {
		s.metrics.ProvisionsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) publishAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit publish failed",
			"action", event.Action,
			"identity", event.Identity,
			"error", err,
		)
	}
}

func chainIDList(chains map[models.ChainID]models.Address) []uint64 {
	ids := make([]uint64, 0, len(chains))
	for id := range chains {
		ids = append(ids, uint64(id))
	}
	return ids
}
