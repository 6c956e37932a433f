package codec

import (
	"fmt"
	"sort"

	"github.com/go-iso15118/hlc/pkg/bitstream"
	"github.com/go-iso15118/hlc/pkg/message"
)

// Canonical renders the deterministic byte sequence that a PnC signature
// protects (spec §4.7 "canonical-EXI hash of selected fragments"): the
// message's own encode function run in isolation, preceded by the sorted,
// length-prefixed list of fragment ids it claims to cover. For
// AuthorizationReq, AuthorizationReq20 and PaymentDetailsReq the Header's
// Signature field is cleared first so a signature never covers itself;
// any other body is encoded with its Signature as it stands.
// Encoding twice for the same body and fragment set always yields the same
// bytes, which is the only property a detached signature needs.
func Canonical(body message.Body, fragmentIDs []string) ([]byte, error) {
	ids := append([]string(nil), fragmentIDs...)
	sort.Strings(ids)

	bs := bitstream.NewWriter(initialBufferSize)
	if err := bs.WriteUnsignedVar(uint64(len(ids))); err != nil {
		return nil, wrapErr("canonical", err)
	}
	for _, id := range ids {
		if err := bs.WriteString(id); err != nil {
			return nil, wrapErr("canonical", err)
		}
	}

	unsigned := stripSignature(body)
	if err := encodeBody(bs, message.Header{}, unsigned); err != nil {
		return nil, wrapErr("canonical", fmt.Errorf("encoding body for signing: %w", err))
	}
	return bs.Bytes(), nil
}

// stripSignature returns a shallow copy of body with Header.Signature set
// to nil when body is an AuthorizationReq, AuthorizationReq20 or
// PaymentDetailsReq, so those can be signed before the Signature field
// itself has a value. Any other body is returned unchanged.
func stripSignature(body message.Body) message.Body {
	switch v := body.(type) {
	case *message.AuthorizationReq:
		cp := *v
		cp.Header.Signature = nil
		return &cp
	case *message.AuthorizationReq20:
		cp := *v
		cp.Header.Signature = nil
		return &cp
	case *message.PaymentDetailsReq:
		cp := *v
		cp.Header.Signature = nil
		return &cp
	default:
		return body
	}
}
