// Package audit records wallet provisioning and override events. Publishing
// is fail-open: a lost audit event is logged but never fails the operation
// that produced it, since the mapping store remains the source of truth.
package audit

import (
	"context"
	"time"
)

// Actions emitted by the wallet service.
const (
	ActionProvisioned = "wallet_provisioned"
	ActionOverridden  = "wallet_mapping_overridden"
)

// Event is one observed mapping mutation.
type Event struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Identity  string    `json:"identity"`
	ChainIDs  []uint64  `json:"chain_ids,omitempty"`
	Address   string    `json:"address,omitempty"`
	Minted    bool      `json:"minted"`
	Actor     string    `json:"actor,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers events to an audit sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
