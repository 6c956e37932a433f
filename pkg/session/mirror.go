package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mirror receives write-through copies of session records for external
// visibility (diagnostics dashboards, operational tooling). Spec §4.9 is
// explicit that a mirror is advisory only: the in-memory Store remains
// the sole authority a running session consults.
type Mirror interface {
	Write(s *Session) error
	Delete(id ID) error
}

// mirrorRecord is the reduced, JSON-friendly projection of a Session that
// actually gets mirrored. Certificates and the in-progress Schedule value
// are session-internal working state, not the kind of summary an external
// viewer of the mirror needs, so they're left out rather than taught how
// to serialize.
type mirrorRecord struct {
	ID                 string `json:"id"`
	Role               string `json:"role"`
	Dialect            uint8  `json:"dialect"`
	State              string `json:"state"`
	Started            time.Time `json:"started"`
	EnergyTransferMode uint8  `json:"energy_transfer_mode"`
	AuthMethod         uint8  `json:"auth_method"`
	TLSEnabled         bool   `json:"tls_enabled"`
	TerminationReason  string `json:"termination_reason,omitempty"`
}

func toMirrorRecord(s *Session) mirrorRecord {
	rec := mirrorRecord{
		ID:                 fmt.Sprintf("%x", s.ID),
		Role:               s.Role.String(),
		Dialect:            uint8(s.Dialect),
		State:              s.State.String(),
		Started:            s.Started,
		EnergyTransferMode: uint8(s.EnergyTransferMode),
		AuthMethod:         uint8(s.AuthMethod),
		TLSEnabled:         s.TLSEnabled,
	}
	if s.State == StateTerminated {
		rec.TerminationReason = s.TerminationReason.String()
	}
	return rec
}

// RedisMirror writes session summaries to a Redis key per session,
// under a namespaced key prefix, with a TTL so abandoned sessions expire
// from the mirror on their own rather than needing an explicit sweep.
type RedisMirror struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisMirror builds a Mirror backed by client. ttl bounds how long a
// mirrored record survives without being refreshed by another Write;
// zero disables expiry.
func NewRedisMirror(client *redis.Client, ttl time.Duration) *RedisMirror {
	return &RedisMirror{client: client, prefix: "hlc:session:", ttl: ttl}
}

func (m *RedisMirror) key(id ID) string {
	return fmt.Sprintf("%s%x", m.prefix, id)
}

// Write serializes s into its mirrorRecord projection and stores it.
func (m *RedisMirror) Write(s *Session) error {
	b, err := json.Marshal(toMirrorRecord(s))
	if err != nil {
		return fmt.Errorf("redis mirror: marshal %x: %w", s.ID, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.client.Set(ctx, m.key(s.ID), b, m.ttl).Err(); err != nil {
		return fmt.Errorf("redis mirror: set %x: %w", s.ID, err)
	}
	return nil
}

// Delete removes a mirrored record.
func (m *RedisMirror) Delete(id ID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.client.Del(ctx, m.key(id)).Err(); err != nil {
		return fmt.Errorf("redis mirror: del %x: %w", id, err)
	}
	return nil
}
