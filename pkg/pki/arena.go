package pki

import (
	"crypto/x509"
	"fmt"
)

// certID is an index into an Arena's backing slice. Chains and revocation
// sets are short vectors of certID rather than pointers, per spec §8's
// design note on representing the certificate graph with integer indices
// instead of a pointer-linked structure.
type certID int

// Arena owns every certificate this process has parsed, keyed by a stable
// integer id. Trust anchors and leaf/intermediate certificates share one
// arena; Role-scoped anchor sets and chains reference it by certID so no
// certificate is ever copied or re-parsed.
type Arena struct {
	certs   []*x509.Certificate
	byFP    map[string]certID
	anchors map[Role][]certID
	revoked map[string]bool
}

// NewArena returns an empty Arena ready for Add/AddAnchor calls.
func NewArena() *Arena {
	return &Arena{
		byFP:    make(map[string]certID),
		anchors: make(map[Role][]certID),
		revoked: make(map[string]bool),
	}
}

// Add parses der and inserts it if not already present, returning its
// stable id. Re-adding an identical certificate returns the existing id.
func (a *Arena) Add(der []byte) (certID, error) {
	fp := fingerprint(der)
	if id, ok := a.byFP[fp]; ok {
		return id, nil
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return 0, wrapErr("parse certificate", err)
	}
	id := certID(len(a.certs))
	a.certs = append(a.certs, cert)
	a.byFP[fp] = id
	return id, nil
}

// AddAnchor parses der, inserts it, and registers it as a trust anchor for
// role.
func (a *Arena) AddAnchor(role Role, der []byte) (certID, error) {
	id, err := a.Add(der)
	if err != nil {
		return 0, err
	}
	a.anchors[role] = append(a.anchors[role], id)
	return id, nil
}

// Revoke marks the certificate identified by its DER encoding as revoked,
// keyed by fingerprint so a certificate need not already be in the arena.
func (a *Arena) Revoke(der []byte) {
	a.revoked[fingerprint(der)] = true
}

// IsRevoked reports whether the given DER-encoded certificate has been
// revoked.
func (a *Arena) IsRevoked(der []byte) bool {
	return a.revoked[fingerprint(der)]
}

func (a *Arena) cert(id certID) *x509.Certificate {
	if int(id) < 0 || int(id) >= len(a.certs) {
		return nil
	}
	return a.certs[id]
}

func (a *Arena) isAnchor(role Role, id certID) bool {
	for _, anchorID := range a.anchors[role] {
		if anchorID == id {
			return true
		}
	}
	return false
}

func fingerprint(der []byte) string {
	// SHA-256 over the raw DER is the standard's own identifier for a
	// certificate (ISO 15118 "certificate hash data"); reuse it as the
	// arena's dedup/revocation key so pki and any wire-level hash-data
	// field agree on the same value.
	return fmt.Sprintf("%x", sha256Sum(der))
}
