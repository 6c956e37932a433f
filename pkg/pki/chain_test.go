package pki_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/pki"
)

func generateCert(t *testing.T, subject string, parent *x509.Certificate, parentKey *ecdsa.PrivateKey, notBefore, notAfter time.Time, isCA bool) ([]byte, *ecdsa.PrivateKey, *x509.Certificate) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: subject},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		IsCA:         isCA,
		BasicConstraintsValid: true,
	}

	signer := tmpl
	signerKey := key
	if parent != nil {
		signer = parent
		signerKey = parentKey
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, signer, &key.PublicKey, signerKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return der, key, cert
}

func buildTestChain(t *testing.T) (rootDER, leafDER []byte) {
	t.Helper()
	now := time.Now()
	rootDER, rootKey, rootCert := generateCert(t, "V2G Root", nil, nil, now.Add(-time.Hour), now.Add(24*time.Hour), true)
	leafDER, _, _ = generateCert(t, "EVSE Leaf", rootCert, rootKey, now.Add(-time.Hour), now.Add(time.Hour), false)
	return rootDER, leafDER
}

func TestChainValidate_Success(t *testing.T) {
	rootDER, leafDER := buildTestChain(t)

	arena := pki.NewArena()
	_, err := arena.AddAnchor(pki.RoleV2G, rootDER)
	require.NoError(t, err)

	chain, err := pki.NewChain(arena, [][]byte{leafDER, rootDER})
	require.NoError(t, err)

	require.NoError(t, chain.Validate(pki.RoleV2G, time.Now()))
}

func TestChainValidate_WrongRole(t *testing.T) {
	rootDER, leafDER := buildTestChain(t)

	arena := pki.NewArena()
	_, err := arena.AddAnchor(pki.RoleMO, rootDER)
	require.NoError(t, err)

	chain, err := pki.NewChain(arena, [][]byte{leafDER, rootDER})
	require.NoError(t, err)

	err = chain.Validate(pki.RoleV2G, time.Now())
	require.Error(t, err)
}

func TestChainValidate_Expired(t *testing.T) {
	now := time.Now()
	rootDER, rootKey, rootCert := generateCert(t, "V2G Root", nil, nil, now.Add(-48*time.Hour), now.Add(24*time.Hour), true)
	leafDER, _, _ := generateCert(t, "EVSE Leaf", rootCert, rootKey, now.Add(-48*time.Hour), now.Add(-time.Hour), false)

	arena := pki.NewArena()
	_, err := arena.AddAnchor(pki.RoleV2G, rootDER)
	require.NoError(t, err)

	chain, err := pki.NewChain(arena, [][]byte{leafDER, rootDER})
	require.NoError(t, err)

	err = chain.Validate(pki.RoleV2G, now)
	require.Error(t, err)
}

func TestChainValidate_Revoked(t *testing.T) {
	rootDER, leafDER := buildTestChain(t)

	arena := pki.NewArena()
	_, err := arena.AddAnchor(pki.RoleV2G, rootDER)
	require.NoError(t, err)
	arena.Revoke(leafDER)

	chain, err := pki.NewChain(arena, [][]byte{leafDER, rootDER})
	require.NoError(t, err)

	err = chain.Validate(pki.RoleV2G, time.Now())
	require.Error(t, err)
}

func TestChainValidate_EmptyChain(t *testing.T) {
	arena := pki.NewArena()
	chain, err := pki.NewChain(arena, nil)
	require.NoError(t, err)
	require.Error(t, chain.Validate(pki.RoleV2G, time.Now()))
}
