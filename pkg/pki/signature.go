package pki

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
)

// VerifySignature checks sig over the canonical-EXI bytes of a signed
// message fragment (spec §4.7), dispatching on the leaf certificate's
// public key algorithm. ISO 15118 PnC signing uses ECDSA (P-256) for -2
// and -20; RSA and Ed25519 are accepted here too since the standard's
// contract-cert profile is implementation-selectable and nothing in
// spec.md pins one algorithm.
func VerifySignature(leaf *x509.Certificate, canonical []byte, sig []byte) error {
	digest := sha256.Sum256(canonical)

	switch pub := leaf.PublicKey.(type) {
	case *ecdsa.PublicKey:
		if !ecdsa.VerifyASN1(pub, digest[:], sig) {
			return wrapErr("verify signature", fmt.Errorf("ECDSA verification failed"))
		}
		return nil
	case *rsa.PublicKey:
		if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig); err != nil {
			return wrapErr("verify signature", fmt.Errorf("RSA verification failed: %w", err))
		}
		return nil
	case ed25519.PublicKey:
		if !ed25519.Verify(pub, canonical, sig) {
			return wrapErr("verify signature", fmt.Errorf("Ed25519 verification failed"))
		}
		return nil
	default:
		return wrapErr("verify signature", fmt.Errorf("unsupported public key type %T", pub))
	}
}
