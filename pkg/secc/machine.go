// Package secc implements the SECC (charge-point-side) state machine
// (spec §4.6): a mirror of pkg/evcc as a responder, with the additional
// duties of assigning the session identifier on its first response and
// validating every subsequent request against what it offered earlier
// in the same session.
package secc

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/go-iso15118/hlc/pkg/codec"
	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/router"
	"github.com/go-iso15118/hlc/pkg/session"
	"github.com/go-iso15118/hlc/pkg/v2gtp"
)

// Conn is the transport surface the machine needs, matching pkg/evcc's.
type Conn interface {
	io.Reader
	io.Writer
}

// Machine drives one accepted SECC session end to end. Per spec §4.6
// "Concurrency": a Machine owns its Sess exclusively and shares nothing
// mutable with any other session beyond the controller and trust store,
// both of which are read-mostly or internally synchronized by their own
// implementation.
type Machine struct {
	Sess *session.Session
	Ctrl controller.SECCController
	Conn Conn

	frames chan frameResult

	// offered tracks what this SECC has told the EVCC it supports, so
	// later requests (ServiceSelection, Authorization) can be validated
	// against what was actually offered rather than trusted blindly
	// (spec §4.6).
	offeredServiceIDs  map[int]bool
	offeredAuthMethods map[message.AuthorizationMethod]bool

	contractID       string
	pncCertInstalled bool
}

type frameResult struct {
	frame v2gtp.Frame
	err   error
}

// Run accepts the SupportedAppProtocol handshake, assigns the session
// id, then drives request/response exchanges until the session reaches
// StateTerminated by any path.
func (m *Machine) Run(ctx context.Context) error {
	m.frames = make(chan frameResult, 1)
	go m.readLoop(ctx)

	if err := m.negotiate(ctx); err != nil {
		if m.Sess.State != session.StateTerminated {
			m.fail(session.TerminationProtocolError, err)
		}
		return err
	}

	var table *router.Table
	switch m.Sess.Dialect {
	case message.Dialect2:
		table = router.Dialect2()
	case message.Dialect20:
		table = router.Dialect20()
	default:
		err := fmt.Errorf("secc: unsupported dialect %s", m.Sess.Dialect)
		m.fail(session.TerminationProtocolError, err)
		return err
	}

	for m.Sess.State != session.StateTerminated {
		body, kind, err := m.receiveRequest(ctx, table)
		if err != nil {
			return err
		}

		resp, next, herr := m.handle(ctx, table, kind, body)
		if herr != nil {
			m.fail(session.TerminationControllerError, herr)
			m.sendBestEffort(resp)
			return herr
		}

		if err := m.send(resp); err != nil {
			m.fail(session.TerminationTransportError, err)
			return err
		}
		m.Sess.State = next
		m.Sess.ArmSequence(time.Now())

		if next == session.StateTerminated {
			m.Sess.Terminate(session.TerminationOK, "")
		}
	}
	return nil
}

func (m *Machine) readLoop(ctx context.Context) {
	for {
		f, err := v2gtp.ReadFrame(m.Conn)
		select {
		case m.frames <- frameResult{frame: f, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (m *Machine) fail(reason session.TerminationReason, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	m.Sess.Terminate(reason, detail)
}

func (m *Machine) send(body message.Body) error {
	frame, err := codec.Encode(message.Message{Header: codec.HeaderOf(body), Body: body})
	if err != nil {
		return fmt.Errorf("secc: encode %s: %w", body.Kind(), err)
	}
	return v2gtp.WriteFrame(m.Conn, frame)
}

// sendBestEffort writes resp if non-nil, swallowing any error: it is
// called only while already unwinding from a controller failure, so a
// secondary transport error must not mask the original one.
func (m *Machine) sendBestEffort(resp message.Body) {
	if resp == nil {
		return
	}
	_ = m.send(resp)
}

// receiveRequest waits for the next frame and decodes it against
// whichever Kind(s) are legal from the session's current state (spec
// §4.4/§8 invariant 2). If none decode, the session is terminated with
// TerminationProtocolError and no FAILED_SequenceError response is sent;
// if the sequence timer expires first, it is terminated with
// TerminationTimeout.
func (m *Machine) receiveRequest(ctx context.Context, table *router.Table) (message.Body, message.Kind, error) {
	now := time.Now()
	m.Sess.ArmSequence(now)

	for {
		remaining := m.Sess.Timer.Remaining(time.Now())
		if remaining <= 0 {
			err := fmt.Errorf("secc: sequence timer expired waiting for next request")
			m.fail(session.TerminationTimeout, err)
			return nil, message.KindUnknown, err
		}
		select {
		case <-ctx.Done():
			return nil, message.KindUnknown, ctx.Err()
		case <-time.After(remaining):
			continue
		case res := <-m.frames:
			if res.err != nil {
				m.fail(session.TerminationTransportError, res.err)
				return nil, message.KindUnknown, res.err
			}
			m.Sess.Timer.Cancel()
			return m.decodeAgainstLegalKinds(table, res.frame)
		}
	}
}

func (m *Machine) decodeAgainstLegalKinds(table *router.Table, frame v2gtp.Frame) (message.Body, message.Kind, error) {
	candidates := table.LegalKinds(m.Sess.State)
	var lastErr error
	for _, kind := range candidates {
		if kind == message.KindChargeLoop && m.Sess.Dialect == message.Dialect2 {
			env, err := codec.DecodeChargeLoop2(frame, isDC(m.Sess.EnergyTransferMode), true)
			if err != nil {
				lastErr = err
				continue
			}
			return env.Message.Body, kind, nil
		}
		env, err := codec.Decode(frame, kind, true)
		if err != nil {
			lastErr = err
			continue
		}
		return env.Message.Body, kind, nil
	}
	err := fmt.Errorf("secc: no legal message from state %s decoded this frame (last error: %v)", m.Sess.State, lastErr)
	m.fail(session.TerminationProtocolError, err)
	return nil, message.KindUnknown, err
}

// isDC reports whether mode uses the -2 CurrentDemand charge loop instead
// of ChargingStatus, mirroring pkg/evcc's isDC.
func isDC(mode message.EnergyTransferMode) bool {
	switch mode {
	case message.ModeDCExtended, message.ModeDCCombo, message.ModeDCUnique, message.ModeDCBidirectional:
		return true
	default:
		return false
	}
}

// assignSessionID draws 8 random bytes for a brand new session
// identifier (spec §4.6: the SECC assigns it on the first response).
func assignSessionID() (session.ID, error) {
	var id session.ID
	if _, err := rand.Read(id[:]); err != nil {
		return id, fmt.Errorf("secc: generating session id: %w", err)
	}
	return id, nil
}
