package signer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"walletmap/internal/wallet/models"
)

// DevIssuer mints random syntactically valid addresses with no backing key
// material. It exists so the service can run locally without CubeSigner
// access; never deploy it anywhere an address must be spendable.
type DevIssuer struct{}

func NewDevIssuer() *DevIssuer { return &DevIssuer{} }

func (d *DevIssuer) Issue(_ context.Context, _ models.Identity) (models.Address, error) {
	return randomAddress()
}

func (d *DevIssuer) IssueForChain(_ context.Context, _ models.Identity, _ models.ChainID) (models.Address, error) {
	return randomAddress()
}

func randomAddress() (models.Address, error) {
	var raw [20]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("generate dev address: %w", err)
	}
	return models.Address("0x" + hex.EncodeToString(raw[:])), nil
}
