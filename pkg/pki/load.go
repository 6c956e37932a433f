package pki

import (
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

// Store bundles the Arena plus the TLS identity a process presents on
// its own end of the handshake, as loaded from a PKI_PATH directory tree
// (spec §6 "PKI on disk": "the exact filenames are implementation-
// defined; the validation rules are not"). This module's convention:
// <role>_root.pem for each anchor, <role>_cert.pem/<role>_key.pem for an
// identity this process holds.
type Store struct {
	Arena *Arena

	// EVSEIdentity is the SECC's own TLS server certificate/key pair,
	// nil if PKI_PATH carried none (plain-TCP-only deployment).
	EVSEIdentity *tls.Certificate

	// ContractIdentity is the EVCC's PnC contract certificate/key pair,
	// nil for EIM-only deployments.
	ContractIdentity *tls.Certificate
}

var anchorFiles = map[Role]string{
	RoleV2G:      "v2g_root.pem",
	RoleMO:       "mo_root.pem",
	RoleOEM:      "oem_root.pem",
	RoleContract: "contract_root.pem",
}

// LoadDir reads every anchor and identity file present under dir,
// tolerating missing optional files (contract identity, MO/OEM roots a
// given deployment doesn't need) but failing on a present-but-malformed
// file.
func LoadDir(dir string) (*Store, error) {
	arena := NewArena()
	st := &Store{Arena: arena}

	for role, name := range anchorFiles {
		path := filepath.Join(dir, name)
		der, ok, err := readOptionalPEM(path)
		if err != nil {
			return nil, wrapErr(fmt.Sprintf("load anchor %s", name), err)
		}
		if !ok {
			continue
		}
		if _, err := arena.AddAnchor(role, der); err != nil {
			return nil, wrapErr(fmt.Sprintf("register anchor %s", name), err)
		}
	}

	if cert, ok, err := readOptionalKeyPair(dir, "evse_cert.pem", "evse_key.pem"); err != nil {
		return nil, wrapErr("load EVSE identity", err)
	} else if ok {
		st.EVSEIdentity = &cert
	}

	if cert, ok, err := readOptionalKeyPair(dir, "contract_cert.pem", "contract_key.pem"); err != nil {
		return nil, wrapErr("load contract identity", err)
	} else if ok {
		st.ContractIdentity = &cert
	}

	return st, nil
}

func readOptionalPEM(path string) ([]byte, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, false, fmt.Errorf("%s: not a PEM file", path)
	}
	return block.Bytes, true, nil
}

func readOptionalKeyPair(dir, certFile, keyFile string) (tls.Certificate, bool, error) {
	certPath := filepath.Join(dir, certFile)
	keyPath := filepath.Join(dir, keyFile)
	if _, err := os.Stat(certPath); os.IsNotExist(err) {
		return tls.Certificate{}, false, nil
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, false, err
	}
	return cert, true, nil
}
