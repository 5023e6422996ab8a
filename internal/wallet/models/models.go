package models

import (
	derrors "walletmap/pkg/domain-errors"
)

// Identity is the source-chain principal (a Solana public key). It is
// validated at the request boundary and treated as an opaque key from there
// on.
type Identity string

func (i Identity) IsZero() bool { return i == "" }

func (i Identity) String() string { return string(i) }

// ChainID identifies a destination EVM network.
type ChainID uint64

// Address is a destination-chain credential: "0x" followed by exactly 40 hex
// characters. Validate runs at every write boundary so a malformed address
// can never reach the store.
type Address string

const (
	addressPrefix = "0x"
	addressLen    = 42
)

// Validate enforces the address syntax invariant.
func (a Address) Validate() error {
	if len(a) != addressLen || a[:2] != addressPrefix {
		return derrors.New(derrors.CodeBadRequest, "address must be 0x followed by 40 hex characters")
	}
	for _, c := range a[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return derrors.New(derrors.CodeBadRequest, "address must be 0x followed by 40 hex characters")
		}
	}
	return nil
}

func (a Address) String() string { return string(a) }

// ProvisionResult covers every requested chain plus the canonical address
// shared by chains that were never individually overridden.
type ProvisionResult struct {
	CanonicalAddress Address
	Chains           map[ChainID]Address
}

// OverrideResult reports the freshly stored per-chain address.
type OverrideResult struct {
	ChainID ChainID
	Address Address
}
