package secc

import (
	"context"
	"fmt"
	"time"

	"github.com/go-iso15118/hlc/pkg/codec"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
	"github.com/go-iso15118/hlc/pkg/v2gtp"
)

// negotiate handles the two exchanges that precede the common
// (state, kind) table: SupportedAppProtocol (which has no session id
// yet and always rides the -2 EXI wrapper) and SessionSetup (whose
// response is where the SECC assigns the 8-byte session identifier,
// spec §4.6).
func (m *Machine) negotiate(ctx context.Context) error {
	sapBody, err := m.waitFrame(ctx, message.KindSupportedAppProtocol, true)
	if err != nil {
		return err
	}
	sapReq, ok := sapBody.(*message.SupportedAppProtocolReq)
	if !ok {
		return fmt.Errorf("secc: expected SupportedAppProtocolReq, got %T", sapBody)
	}

	dialect, schemaID := chooseDialect(sapReq.Protocols)
	sapRes := &message.SupportedAppProtocolRes{
		ResponseCode:      message.ResponseOK,
		SchemaID:          schemaID,
		NegotiatedDialect: dialect,
	}
	if dialect == message.DialectUnknown {
		sapRes.ResponseCode = message.ResponseFailed
		_ = m.send(sapRes)
		return fmt.Errorf("secc: no mutually supported dialect in %v", sapReq.Protocols)
	}
	if err := m.send(sapRes); err != nil {
		return err
	}
	m.Sess.Dialect = dialect
	m.Sess.State = session.StateSupportedAppProtocol
	m.Sess.ArmSequence(time.Now())

	return m.negotiateSessionSetup(ctx, dialect)
}

// chooseDialect picks -20 if offered, else -2, matching ISO 15118's own
// guidance that a SECC supporting both prefers the newer standard. It
// returns the SchemaID of whichever entry it picked so the response can
// echo it back, as the wire protocol requires.
func chooseDialect(protocols []message.AppProtocol) (message.Dialect, uint8) {
	var has2, has20 bool
	var schema2, schema20 uint8
	for _, p := range protocols {
		switch {
		case containsDialect20(p.Namespace):
			has20, schema20 = true, p.SchemaID
		case containsDialect2(p.Namespace):
			has2, schema2 = true, p.SchemaID
		}
	}
	if has20 {
		return message.Dialect20, schema20
	}
	if has2 {
		return message.Dialect2, schema2
	}
	return message.DialectUnknown, 0
}

func containsDialect20(ns string) bool {
	return len(ns) >= 3 && ns[len(ns)-3:] == "-20"
}

func containsDialect2(ns string) bool {
	return len(ns) >= 2 && ns[len(ns)-2:] == "-2"
}

func (m *Machine) negotiateSessionSetup(ctx context.Context, dialect message.Dialect) error {
	kind := message.KindSessionSetup
	body, err := m.waitFrame(ctx, kind, true)
	if err != nil {
		return err
	}

	id, err := assignSessionID()
	if err != nil {
		return err
	}
	m.Sess.ID = id

	switch dialect {
	case message.Dialect2:
		req, ok := body.(*message.SessionSetupReq)
		if !ok {
			return fmt.Errorf("secc: expected SessionSetupReq, got %T", body)
		}
		_ = req
		res := &message.SessionSetupRes{
			Header:       message.Header{SessionID: id},
			ResponseCode: message.ResponseOKNewSessionEstablished,
			EVSEID:       m.Ctrl.EVSEID(),
			Timestamp:    time.Now().Unix(),
		}
		if err := m.send(res); err != nil {
			return err
		}
	case message.Dialect20:
		req, ok := body.(*message.SessionSetupReq20)
		if !ok {
			return fmt.Errorf("secc: expected SessionSetupReq20, got %T", body)
		}
		_ = req
		res := &message.SessionSetupRes20{
			Header:       message.Header{SessionID: id},
			ResponseCode: message.ResponseOKNewSessionEstablished,
			EVSEID:       m.Ctrl.EVSEID(),
		}
		if err := m.send(res); err != nil {
			return err
		}
	}

	m.Sess.State = session.StateSessionSetup
	m.Sess.ArmSequence(time.Now())
	return nil
}

// waitFrame blocks for one frame and decodes it as (kind, isRequest),
// used only during negotiate before a router.Table applies.
func (m *Machine) waitFrame(ctx context.Context, kind message.Kind, isRequest bool) (message.Body, error) {
	for {
		remaining := m.Sess.Timer.Remaining(time.Now())
		if remaining <= 0 {
			err := fmt.Errorf("secc: sequence timer expired awaiting %s", kind)
			m.fail(session.TerminationTimeout, err)
			return nil, err
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
			env, err := decodeFrame(res.frame, kind, isRequest)
			if err != nil {
				m.fail(session.TerminationCodecError, err)
				return nil, err
			}
			return env, nil
		}
	}
}

func decodeFrame(frame v2gtp.Frame, kind message.Kind, isRequest bool) (message.Body, error) {
	env, err := codec.Decode(frame, kind, isRequest)
	if err != nil {
		return nil, err
	}
	return env.Message.Body, nil
}
