// Package evcc implements the EVCC (vehicle-side) state machine (spec
// §4.5): for each state it consults the controller for the values a
// request needs, sends it, arms the dialect's timer, and waits for the
// paired response or timer expiry — never both, never neither (spec §8
// invariant 2).
package evcc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-iso15118/hlc/pkg/codec"
	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
	"github.com/go-iso15118/hlc/pkg/v2gtp"
)

// Conn is the transport surface the machine needs: a byte stream already
// dialed to the SECC's advertised endpoint (TLS or plain, per pkg/pki).
// pkg/transport supplies the concrete implementation; evcc only depends
// on io.Reader/io.Writer so it can be driven by a net.Conn or, in tests,
// an in-memory pipe.
type Conn interface {
	io.Reader
	io.Writer
}

// Machine drives one EVCC session end to end.
type Machine struct {
	Sess *session.Session
	Ctrl controller.EVCCController
	Conn Conn

	// PnC identity material. Only read when Sess.AuthMethod is
	// message.AuthPnC; EIM-only deployments may leave these nil/empty.
	OEMProvisioningCertDER []byte
	ContractID             string

	frames chan frameResult
}

type frameResult struct {
	frame v2gtp.Frame
	err   error
}

// Run drives the session from StateIdle to StateTerminated, dispatching
// to the dialect-specific step sequence once SupportedAppProtocol has
// negotiated which one applies. Every path ends in StateTerminated with
// Sess.TerminationReason recording the outcome; Run returns nil when the
// session completes normally and the failing step's error otherwise.
func (m *Machine) Run(ctx context.Context) error {
	m.frames = make(chan frameResult, 1)
	go m.readLoop(ctx)

	dialect, err := m.negotiateDialect(ctx)
	if err != nil {
		m.fail(session.TerminationProtocolError, err)
		return err
	}
	m.Sess.Dialect = dialect

	switch dialect {
	case message.Dialect2:
		err = m.runDialect2(ctx)
	case message.Dialect20:
		err = m.runDialect20(ctx)
	default:
		err = fmt.Errorf("evcc: unsupported dialect %s", dialect)
	}
	if err != nil && m.Sess.State != session.StateTerminated {
		m.fail(session.TerminationProtocolError, err)
	}
	return err
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

// sendAndWait encodes and sends body, arms timerKind for dur, and waits
// for the reader goroutine to deliver the next frame or for the timer to
// expire — the two suspension points spec §5 requires selecting over
// without ambiguous priority (ctx cancellation is the third). On a
// successful frame it decodes against (wantKind, wantRequest) and
// returns the typed response.
func (m *Machine) sendAndWait(ctx context.Context, req message.Body, timerKind session.TimerKind, dur time.Duration, wantKind message.Kind, wantRequest bool) (message.Body, error) {
	frame, err := codec.Encode(message.Message{Header: codec.HeaderOf(req), Body: req})
	if err != nil {
		return nil, fmt.Errorf("evcc: encode %s: %w", req.Kind(), err)
	}
	if err := v2gtp.WriteFrame(writerOf(m.Conn), frame); err != nil {
		return nil, fmt.Errorf("evcc: write %s: %w", req.Kind(), err)
	}

	now := time.Now()
	m.Sess.Timer.Arm(timerKind, dur, now)

	for {
		remaining := m.Sess.Timer.Remaining(time.Now())
		if remaining <= 0 {
			m.fail(session.TerminationTimeout, fmt.Errorf("%s timer expired awaiting %s", timerKind, wantKind))
			return nil, errTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(remaining):
			continue // re-check: Remaining() re-derives from the deadline each loop
		case res := <-m.frames:
			if res.err != nil {
				m.fail(session.TerminationTransportError, res.err)
				return nil, res.err
			}
			m.Sess.Timer.Cancel()
			env, err := codec.Decode(res.frame, wantKind, wantRequest)
			if err != nil {
				m.fail(session.TerminationCodecError, err)
				return nil, err
			}
			return env.Message.Body, nil
		}
	}
}

// sendAndWaitChargeLoop2 mirrors sendAndWait but decodes the response via
// codec.DecodeChargeLoop2, since -2's charge loop carries CurrentDemand
// (DC) and ChargingStatus (AC) under the same Kind with no wire tag to
// tell them apart (see codec.DecodeChargeLoop2).
func (m *Machine) sendAndWaitChargeLoop2(ctx context.Context, req message.Body, isDC bool) (message.Body, error) {
	frame, err := codec.Encode(message.Message{Header: codec.HeaderOf(req), Body: req})
	if err != nil {
		return nil, fmt.Errorf("evcc: encode %s: %w", req.Kind(), err)
	}
	if err := v2gtp.WriteFrame(writerOf(m.Conn), frame); err != nil {
		return nil, fmt.Errorf("evcc: write %s: %w", req.Kind(), err)
	}

	now := time.Now()
	m.Sess.Timer.Arm(session.TimerPerformance, m.Sess.Timeouts.Performance, now)

	for {
		remaining := m.Sess.Timer.Remaining(time.Now())
		if remaining <= 0 {
			m.fail(session.TerminationTimeout, fmt.Errorf("performance timer expired awaiting charge loop response"))
			return nil, errTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(remaining):
			continue
		case res := <-m.frames:
			if res.err != nil {
				m.fail(session.TerminationTransportError, res.err)
				return nil, res.err
			}
			m.Sess.Timer.Cancel()
			env, err := codec.DecodeChargeLoop2(res.frame, isDC, false)
			if err != nil {
				m.fail(session.TerminationCodecError, err)
				return nil, err
			}
			return env.Message.Body, nil
		}
	}
}

var errTimeout = errors.New("evcc: timer expired")

func writerOf(c Conn) io.Writer { return c }
