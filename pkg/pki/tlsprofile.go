package pki

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
)

// TLSProfile restricts a *tls.Config to the cipher suite and curve
// combination the ISO 15118 -2/-20 transport layer requires (spec §4.7
// "cipher and curve sets are restricted to the ISO-15118 profile"). The
// exact mandated suite differs slightly between -2 (TLS 1.2) and -20
// (TLS 1.3); both offer P-256, the common ground between the two
// standard revisions' cipher profiles, and -20 also allows X25519.
type TLSProfile struct {
	MinVersion uint16
	// CipherSuites is only meaningful under TLS 1.2; TLS 1.3 cipher
	// selection is not configurable via crypto/tls and is left to the
	// runtime's built-in (AEAD-only) suite set.
	CipherSuites []uint16
	CurvePreferences []tls.CurveID
}

// Dialect2Profile is the TLS 1.2 ECDHE-ECDSA/AES-GCM profile used by -2
// sessions.
func Dialect2Profile() TLSProfile {
	return TLSProfile{
		MinVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		},
		CurvePreferences: []tls.CurveID{tls.CurveP256},
	}
}

// Dialect20Profile is the TLS 1.3 profile used by -20 sessions.
func Dialect20Profile() TLSProfile {
	return TLSProfile{
		MinVersion:       tls.VersionTLS13,
		CurvePreferences: []tls.CurveID{tls.CurveP256, tls.X25519},
	}
}

// Apply fills the relevant fields of cfg in place.
func (p TLSProfile) Apply(cfg *tls.Config) {
	cfg.MinVersion = p.MinVersion
	cfg.MaxVersion = p.MinVersion
	if len(p.CipherSuites) > 0 {
		cfg.CipherSuites = p.CipherSuites
	}
	cfg.CurvePreferences = p.CurvePreferences
}

// SECCServerConfig builds a server-side *tls.Config presenting cert/key as
// the EVSE identity, optionally requiring a client certificate when PnC
// mutual authentication is in effect (spec §4.7 "TLS identity").
func SECCServerConfig(profile TLSProfile, cert tls.Certificate, requireClientCert bool) *tls.Config {
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
	profile.Apply(cfg)
	if requireClientCert {
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	} else {
		cfg.ClientAuth = tls.NoClientCert
	}
	return cfg
}

// EVCCClientConfig builds a client-side *tls.Config. clientCert is the
// OEM provisioning certificate (-2) or contract certificate (-20 PnC); it
// is omitted for EIM-only sessions. roots is the V2G root pool the EVSE
// server certificate must chain to.
func EVCCClientConfig(profile TLSProfile, clientCert *tls.Certificate, roots *x509.CertPool, serverName string) *tls.Config {
	cfg := &tls.Config{RootCAs: roots, ServerName: serverName}
	profile.Apply(cfg)
	if clientCert != nil {
		cfg.Certificates = []tls.Certificate{*clientCert}
	}
	return cfg
}

func (p TLSProfile) String() string {
	return fmt.Sprintf("TLSProfile{min=0x%04x, suites=%d, curves=%v}", p.MinVersion, len(p.CipherSuites), p.CurvePreferences)
}
