package handler

import (
	"strconv"

	"walletmap/internal/wallet/models"
	"walletmap/internal/wallet/service"
)

// ProvisionResponse mirrors the stored state after a provisioning call.
// Chain IDs serialize as strings because JSON object keys are strings.
type ProvisionResponse struct {
	CanonicalAddress string            `json:"canonical_address"`
	Chains           map[string]string `json:"chains"`
}

func FromProvisionResult(result *models.ProvisionResult) ProvisionResponse {
	chains := make(map[string]string, len(result.Chains))
	for chainID, address := range result.Chains {
		chains[strconv.FormatUint(uint64(chainID), 10)] = address.String()
	}
	return ProvisionResponse{
		CanonicalAddress: result.CanonicalAddress.String(),
		Chains:           chains,
	}
}

type OverrideResponse struct {
	ChainID uint64 `json:"chain_id"`
	Address string `json:"address"`
}

func FromOverrideResult(result *models.OverrideResult) OverrideResponse {
	return OverrideResponse{
		ChainID: uint64(result.ChainID),
		Address: result.Address.String(),
	}
}

type ResolveResponse struct {
	Address string `json:"address"`
	Source  string `json:"source"`
}

func FromResolve(address models.Address, source service.ResolveSource) ResolveResponse {
	return ResolveResponse{
		Address: address.String(),
		Source:  string(source),
	}
}
