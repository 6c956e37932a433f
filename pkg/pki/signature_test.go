package pki_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/codec"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/pki"
)

func TestVerifySignature_WrongKeyRejected(t *testing.T) {
	_, leafDER := buildTestChain(t)
	leafCert, err := x509.ParseCertificate(leafDER)
	require.NoError(t, err)

	body := &message.AuthorizationReq{
		Header:       message.Header{SessionID: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}},
		GenChallenge: []byte("challenge"),
	}
	canonical, err := codec.Canonical(body, []string{"GenChallenge"})
	require.NoError(t, err)
	require.NotEmpty(t, canonical)

	// buildTestChain does not expose the leaf's private key, so sign with an
	// unrelated key: VerifySignature must reject it against the actual leaf.
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	digest := sha256.Sum256(canonical)
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	require.NoError(t, err)

	err = pki.VerifySignature(leafCert, canonical, sig)
	require.Error(t, err)
}

func TestVerifySignature_MatchingKeyAccepted(t *testing.T) {
	now := time.Now()
	_, key, cert := generateCert(t, "Contract Leaf", nil, nil, now.Add(-time.Hour), now.Add(time.Hour), false)

	body := &message.AuthorizationReq20{
		Header:       message.Header{SessionID: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}},
		GenChallenge: []byte("challenge-20"),
	}
	canonical, err := codec.Canonical(body, []string{"GenChallenge"})
	require.NoError(t, err)

	digest := sha256.Sum256(canonical)
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	require.NoError(t, err)

	require.NoError(t, pki.VerifySignature(cert, canonical, sig))
}

func TestCanonical_Deterministic(t *testing.T) {
	body := &message.AuthorizationReq{
		Header:       message.Header{SessionID: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}},
		GenChallenge: []byte("challenge"),
	}
	a, err := codec.Canonical(body, []string{"b", "a"})
	require.NoError(t, err)
	b, err := codec.Canonical(body, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, a, b)
}
