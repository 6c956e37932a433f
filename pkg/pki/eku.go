package pki

import (
	"crypto/x509"
	"encoding/asn1"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// isoExtKeyUsageOID is this module's own assignment for the ISO 15118
// role-specific extended-key-usage OID (spec §4.7 names the requirement,
// not the OID value; spec §9 leaves the exact value an open question).
// It is read back out of the extKeyUsage extension with cryptobyte so a
// chain carrying it is distinguishable from one that only has the generic
// x509 ExtKeyUsage bits.
var isoExtKeyUsageOID = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 99999, 1}

const oidExtKeyUsage = "2.5.29.37"

// hasISOExtKeyUsage reports whether cert's extKeyUsage extension contains
// isoExtKeyUsageOID. It walks the extension's raw DER with cryptobyte
// rather than re-deriving x509's parsed ExtKeyUsage/UnknownExtKeyUsage
// fields, since a custom OID not in x509's recognized table only survives
// in UnknownExtKeyUsage — this reads the same bytes directly instead of
// depending on that implementation detail.
func hasISOExtKeyUsage(cert *x509.Certificate) bool {
	for _, ext := range cert.Extensions {
		if ext.Id.String() != oidExtKeyUsage {
			continue
		}
		return extKeyUsageContains(ext.Value, isoExtKeyUsageOID)
	}
	return false
}

func extKeyUsageContains(der []byte, target asn1.ObjectIdentifier) bool {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) {
		return false
	}
	for !seq.Empty() {
		var oid asn1.ObjectIdentifier
		if !seq.ReadASN1ObjectIdentifier(&oid) {
			return false
		}
		if oid.Equal(target) {
			return true
		}
	}
	return false
}
