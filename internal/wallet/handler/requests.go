package handler

import (
	"walletmap/internal/wallet/models"
	derrors "walletmap/pkg/domain-errors"
)

// ProvisionRequest is the wire form of a batch provisioning call.
type ProvisionRequest struct {
	Identity string   `json:"identity"`
	ChainIDs []uint64 `json:"chain_ids"`
}

// Parse validates boundary-level concerns and converts to domain types. The
// chain set emptiness rule belongs to the coordinator, not here.
func (r ProvisionRequest) Parse() (models.Identity, []models.ChainID, error) {
	if r.Identity == "" {
		return "", nil, derrors.New(derrors.CodeBadRequest, "identity is required")
	}
	chainIDs := make([]models.ChainID, 0, len(r.ChainIDs))
	for _, id := range r.ChainIDs {
		chainIDs = append(chainIDs, models.ChainID(id))
	}
	return models.Identity(r.Identity), chainIDs, nil
}

// OverrideRequest is the wire form of an administrative override. An empty
// new_address asks the issuer to mint a fresh chain-scoped one.
type OverrideRequest struct {
	Identity   string `json:"identity"`
	ChainID    uint64 `json:"chain_id"`
	NewAddress string `json:"new_address,omitempty"`
}

func (r OverrideRequest) Parse() (models.Identity, models.ChainID, models.Address, error) {
	if r.Identity == "" {
		return "", 0, "", derrors.New(derrors.CodeBadRequest, "identity is required")
	}
	return models.Identity(r.Identity), models.ChainID(r.ChainID), models.Address(r.NewAddress), nil
}
