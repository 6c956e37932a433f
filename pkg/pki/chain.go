package pki

import (
	"crypto/x509"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// requiredKeyUsage is the key usage ISO 15118 mandates for certificates in
// the signing path (digital signature over contract/EVSE identities). The
// standard additionally defines role-specific extended-key-usage OIDs;
// this module's own assignment is a placeholder pending exact OID values
// (spec §9 open question) and is checked only when RequireISOExtKeyUsage
// is set; otherwise only the base KeyUsage bit is checked.
const requiredKeyUsage = x509.KeyUsageDigitalSignature

// Chain is an ordered, leaf-first list of certificate ids resolved against
// an Arena (spec §3 CertificateChain).
type Chain struct {
	arena      *Arena
	ids        []certID
	strictEKU  bool
}

// RequireISOExtKeyUsage enables a leaf-certificate check for this module's
// placeholder ISO 15118 extended-key-usage OID (see eku.go). Off by
// default: the OID value itself is an open question (spec §9), so
// deployments that haven't adopted this module's placeholder should not
// have chains rejected over it.
func (c *Chain) RequireISOExtKeyUsage() *Chain {
	c.strictEKU = true
	return c
}

// NewChain parses a leaf-first DER chain into the arena and returns a
// Chain ready for Validate. It does not validate on construction.
func NewChain(arena *Arena, derChain [][]byte) (*Chain, error) {
	ids := make([]certID, 0, len(derChain))
	for i, der := range derChain {
		id, err := arena.Add(der)
		if err != nil {
			return nil, wrapErr(fmt.Sprintf("chain[%d]", i), err)
		}
		ids = append(ids, id)
	}
	return &Chain{arena: arena, ids: ids}, nil
}

// Validate checks every invariant in spec §4.7/§8 invariant 5: each
// non-root certificate is signed by the next, within its validity window,
// carries the required key usage, is not in the revocation set, and the
// root matches a trust anchor registered for role. All failing links are
// collected via go-multierror so a single Validate call reports every
// defect in the chain, not just the first.
func (c *Chain) Validate(role Role, now time.Time) error {
	var result *multierror.Error

	if len(c.ids) == 0 {
		return wrapErr("validate", fmt.Errorf("empty chain"))
	}

	for i, id := range c.ids {
		cert := c.arena.cert(id)
		if cert == nil {
			result = multierror.Append(result, fmt.Errorf("link %d: certificate not found in arena", i))
			continue
		}
		if now.Before(cert.NotBefore) || now.After(cert.NotAfter) {
			result = multierror.Append(result, fmt.Errorf("link %d (%s): outside validity window [%s, %s]", i, cert.Subject, cert.NotBefore, cert.NotAfter))
		}
		if cert.KeyUsage&requiredKeyUsage == 0 {
			result = multierror.Append(result, fmt.Errorf("link %d (%s): missing required key usage", i, cert.Subject))
		}
		if c.arena.IsRevoked(cert.Raw) {
			result = multierror.Append(result, fmt.Errorf("link %d (%s): revoked", i, cert.Subject))
		}
		if i == 0 && c.strictEKU && !hasISOExtKeyUsage(cert) {
			result = multierror.Append(result, fmt.Errorf("leaf (%s): missing ISO 15118 extended key usage", cert.Subject))
		}

		if i+1 < len(c.ids) {
			issuer := c.arena.cert(c.ids[i+1])
			if issuer == nil {
				result = multierror.Append(result, fmt.Errorf("link %d (%s): issuer not found in arena", i, cert.Subject))
				continue
			}
			if err := cert.CheckSignatureFrom(issuer); err != nil {
				result = multierror.Append(result, fmt.Errorf("link %d (%s): signature not verified by %s: %w", i, cert.Subject, issuer.Subject, err))
			}
		} else {
			if !c.arena.isAnchor(role, id) {
				result = multierror.Append(result, fmt.Errorf("root %s is not a registered %s trust anchor", cert.Subject, role))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return wrapErr("validate", err)
	}
	return nil
}

// Leaf returns the leaf (first) certificate of the chain.
func (c *Chain) Leaf() *x509.Certificate {
	if len(c.ids) == 0 {
		return nil
	}
	return c.arena.cert(c.ids[0])
}
