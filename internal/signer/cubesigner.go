package signer

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/google/uuid"

	"walletmap/internal/wallet/models"
)

// CubeSigner shells out to the CubeSigner CLI to create Secp256k1 keys. The
// CLI owns authentication and key custody; this wrapper only derives material
// IDs and parses the created key's address.
type CubeSigner struct {
	binary  string
	timeout time.Duration
}

// CubeSignerOption configures a CubeSigner instance.
type CubeSignerOption func(*CubeSigner)

// WithTimeout bounds each CLI invocation.
func WithTimeout(timeout time.Duration) CubeSignerOption {
	return func(c *CubeSigner) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewCubeSigner constructs a CLI-backed issuer. binary is the path to the
// `cs` executable.
func NewCubeSigner(binary string, opts ...CubeSignerOption) (*CubeSigner, error) {
	if binary == "" {
		return nil, fmt.Errorf("cubesigner binary path is required")
	}
	c := &CubeSigner{
		binary:  binary,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue creates the identity-scoped canonical key. The material ID is derived
// from the identity alone so the same identity always maps to one canonical
// key space.
func (c *CubeSigner) Issue(ctx context.Context, identity models.Identity) (models.Address, error) {
	return c.createKey(ctx, "EVM_"+string(identity))
}

// IssueForChain creates a rotation key scoped to (identity, chain). A random
// suffix keeps repeated rotations of the same chain from colliding on
// material ID.
func (c *CubeSigner) IssueForChain(ctx context.Context, identity models.Identity, chainID models.ChainID) (models.Address, error) {
	materialID := "EVM_" + string(identity) + "_" + strconv.FormatUint(uint64(chainID), 10) + "_" + uuid.NewString()
	return c.createKey(ctx, materialID)
}

func (c *CubeSigner) createKey(ctx context.Context, materialID string) (models.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary,
		"key", "create",
		"--type", "Secp256k1",
		"--material-id", materialID,
	)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("cubesigner key create failed: %s", exitErr.Stderr)
		}
		return "", fmt.Errorf("cubesigner key create: %w", err)
	}
	return parseCreatedKey(out)
}

// parseCreatedKey extracts and validates the address from the CLI's JSON
// output: {"key_id": "Key#...", "address": "0x...", ...}.
func parseCreatedKey(out []byte) (models.Address, error) {
	var created struct {
		KeyID   string `json:"key_id"`
		Address string `json:"address"`
	}
	if err := json.Unmarshal(out, &created); err != nil {
		return "", fmt.Errorf("parse cubesigner output: %w", err)
	}
	if created.Address == "" {
		return "", fmt.Errorf("no address field in cubesigner response")
	}
	address := models.Address(created.Address)
	if err := address.Validate(); err != nil {
		return "", fmt.Errorf("cubesigner returned malformed address %q", created.Address)
	}
	return address, nil
}
