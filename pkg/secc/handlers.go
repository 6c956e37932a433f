package secc

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/router"
	"github.com/go-iso15118/hlc/pkg/session"
)

// handle builds the response for one decoded request and reports the
// state to advance to, consulting table for the latter so a single
// source of truth (pkg/router) governs the transition both sides agree
// on. A non-nil error here means the controller itself failed (not a
// protocol violation — those are caught earlier, at decode/LegalKinds
// time) and the caller unwinds the session.
func (m *Machine) handle(ctx context.Context, table *router.Table, kind message.Kind, body message.Body) (message.Body, session.State, error) {
	var resp message.Body
	var err error

	switch m.Sess.Dialect {
	case message.Dialect2:
		resp, err = m.handle2(ctx, kind, body)
	case message.Dialect20:
		resp, err = m.handle20(ctx, kind, body)
	default:
		return nil, m.Sess.State, fmt.Errorf("secc: unsupported dialect %s", m.Sess.Dialect)
	}
	if err != nil {
		return resp, m.Sess.State, err
	}

	next, terr := table.Next(m.Sess.State, kind)
	if terr != nil {
		return resp, m.Sess.State, terr
	}
	return resp, next, nil
}

// genChallenge draws a fresh PnC challenge, used by both dialects'
// Authorization-setup responses.
func genChallenge() ([]byte, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("secc: generating challenge: %w", err)
	}
	return b, nil
}

// authorizationContext builds the oracle input IsAuthorized needs from
// the session's negotiated method. For PnC, ContractValid is true once
// PaymentDetails has been accepted (pncCertInstalled); no pkg/pki chain,
// signature or revocation check is run on this path.
func (m *Machine) authorizationContext(genChallenge []byte) controller.AuthorizationContext {
	return controller.AuthorizationContext{
		Method:        m.Sess.AuthMethod,
		GenChallenge:  genChallenge,
		ContractValid: m.Sess.AuthMethod == message.AuthEIM || m.pncCertInstalled,
	}
}
