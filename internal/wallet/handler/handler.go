package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"walletmap/internal/wallet/models"
	"walletmap/internal/wallet/service"
	derrors "walletmap/pkg/domain-errors"
	"walletmap/pkg/platform/httputil"
	"walletmap/pkg/requestcontext"
)

// Service defines the wallet operations the transport layer depends on.
type Service interface {
	Provision(ctx context.Context, identity models.Identity, chainIDs []models.ChainID) (*models.ProvisionResult, error)
	Override(ctx context.Context, identity models.Identity, chainID models.ChainID, newAddress models.Address) (*models.OverrideResult, error)
	Resolve(ctx context.Context, identity models.Identity, chainID models.ChainID) (models.Address, service.ResolveSource, error)
}

// Handler wires wallet endpoints to the wallet service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a wallet handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the public wallet endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/wallets/provision", h.HandleProvision)
	r.Get("/v1/wallets/{identity}/chains/{chainID}", h.HandleResolve)
}

// RegisterAdmin mounts the operator-only endpoints; the caller is expected to
// wrap the router in admin auth middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/wallets/override", h.HandleOverride)
}

// HandleProvision handles POST /v1/wallets/provision.
func (h *Handler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, err := httputil.Decode[ProvisionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	identity, chainIDs, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Provision(ctx, identity, chainIDs)
	if err != nil {
		h.logger.ErrorContext(ctx, "provisioning failed",
			"request_id", requestcontext.RequestID(ctx),
			"identity", req.Identity,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "provisioning handled",
		"request_id", requestcontext.RequestID(ctx),
		"identity", req.Identity,
		"chains", len(result.Chains),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromProvisionResult(result))
}

// HandleOverride handles POST /admin/wallets/override.
func (h *Handler) HandleOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[OverrideRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	identity, chainID, newAddress, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Override(ctx, identity, chainID, newAddress)
	if err != nil {
		h.logger.ErrorContext(ctx, "override failed",
			"request_id", requestcontext.RequestID(ctx),
			"actor", requestcontext.Actor(ctx),
			"identity", req.Identity,
			"chain_id", req.ChainID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromOverrideResult(result))
}

// HandleResolve handles GET /v1/wallets/{identity}/chains/{chainID}.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := models.Identity(chi.URLParam(r, "identity"))
	rawChainID := chi.URLParam(r, "chainID")
	chainID, err := strconv.ParseUint(rawChainID, 10, 64)
	if err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "chain id must be an unsigned integer"))
		return
	}

	address, source, err := h.service.Resolve(ctx, identity, models.ChainID(chainID))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResolve(address, source))
}
