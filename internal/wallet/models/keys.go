package models

import "strconv"

// Persisted key layout. The format is load-bearing: existing deployments hold
// mappings under these exact keys, so any change here strands stored state.
//
//	per-chain: "{identity}:{chainID}"
//	canonical: "default:{identity}"

// ChainKey returns the store key for a per-chain mapping.
func ChainKey(identity Identity, chainID ChainID) string {
	return string(identity) + ":" + strconv.FormatUint(uint64(chainID), 10)
}

// DefaultKey returns the store key for an identity's canonical address.
func DefaultKey(identity Identity) string {
	return "default:" + string(identity)
}
