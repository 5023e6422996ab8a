package signer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreatedKey(t *testing.T) {
	t.Run("valid output", func(t *testing.T) {
		out := []byte(`{"key_id":"Key#0x1","address":"0x1234567890abcdef1234567890abcdef12345678"}`)
		address, err := parseCreatedKey(out)
		require.NoError(t, err)
		assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", address.String())
	})

	t.Run("extra fields are ignored", func(t *testing.T) {
		out := []byte(`{"key_id":"Key#0x1","address":"0x1234567890abcdef1234567890abcdef12345678","type":"Secp256k1"}`)
		_, err := parseCreatedKey(out)
		assert.NoError(t, err)
	})

	t.Run("missing address field", func(t *testing.T) {
		_, err := parseCreatedKey([]byte(`{"key_id":"Key#0x1"}`))
		assert.ErrorContains(t, err, "no address field")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := parseCreatedKey([]byte(`not json`))
		assert.ErrorContains(t, err, "parse cubesigner output")
	})

	t.Run("malformed address", func(t *testing.T) {
		_, err := parseCreatedKey([]byte(`{"address":"0xshort"}`))
		assert.ErrorContains(t, err, "malformed address")
	})
}

func TestNewCubeSignerRequiresBinary(t *testing.T) {
	_, err := NewCubeSigner("")
	assert.Error(t, err)
}

// The CLI path is exercised with a stub executable that echoes a canned
// response, keeping the test hermetic.
func TestCubeSignerInvokesCLI(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "cs")
	script := "#!/bin/sh\necho '{\"key_id\":\"Key#0x1\",\"address\":\"0x00000000000000000000000000000000000000ff\"}'\n"
	require.NoError(t, os.WriteFile(stub, []byte(script), 0o755))

	cs, err := NewCubeSigner(stub)
	require.NoError(t, err)

	address, err := cs.Issue(context.Background(), "So1anaPubkey111")
	require.NoError(t, err)
	assert.Equal(t, "0x00000000000000000000000000000000000000ff", address.String())

	rotated, err := cs.IssueForChain(context.Background(), "So1anaPubkey111", 137)
	require.NoError(t, err)
	assert.Equal(t, address, rotated)
}

func TestDevIssuerMintsValidDistinctAddresses(t *testing.T) {
	issuer := NewDevIssuer()
	ctx := context.Background()

	first, err := issuer.Issue(ctx, "identity-1")
	require.NoError(t, err)
	require.NoError(t, first.Validate())

	second, err := issuer.IssueForChain(ctx, "identity-1", 137)
	require.NoError(t, err)
	require.NoError(t, second.Validate())

	assert.NotEqual(t, first, second)
}
