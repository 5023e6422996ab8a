// Package service implements the mapping provisioning and override
// coordinators. It holds no locks of its own: all cross-caller coordination
// happens through the store's single-key conditional write, which totally
// orders concurrent writers of one key. The cost is that the issuer may be
// invoked redundantly under contention; a candidate that loses the write race
// is discarded and the stored value is authoritative.
package service

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"walletmap/internal/audit"
	"walletmap/internal/signer"
	"walletmap/internal/wallet/metrics"
	"walletmap/internal/wallet/repository"
	derrors "walletmap/pkg/domain-errors"
)

// Errors returned by the coordinators. Handlers translate them by code;
// tests match them with errors.Is.
var (
	ErrEmptyChainSet  = derrors.New(derrors.CodeBadRequest, "chain_ids must not be empty")
	ErrNotProvisioned = derrors.New(derrors.CodeNotFound, "identity has no canonical mapping")
	ErrNoMapping      = derrors.New(derrors.CodeNotFound, "no mapping for identity and chain")
)

type Service struct {
	repo    *repository.Repository
	issuer  signer.Issuer
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

func New(repo *repository.Repository, issuer signer.Issuer, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("mapping repository is required")
	}
	if issuer == nil {
		return nil, fmt.Errorf("address issuer is required")
	}

	s := &Service{
		repo:   repo,
		issuer: issuer,
		logger: slog.Default(),
		tracer: otel.Tracer("walletmap/wallet"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func storeFailure(err error) error {
	return derrors.Wrap(err, derrors.CodeInternal, "mapping store failed")
}

func issuerFailure(err error) error {
	return derrors.Wrap(err, derrors.CodeUnavailable, "address issuer failed")
}
