// Package router implements the sole authority on request/response
// pairing and state transitions (spec §4.4): a transition table keyed by
// (state, message.Kind) that the SECC state machine consults before
// acting on an incoming message (pkg/evcc sequences its own steps and
// does not use it), and that reports an UnexpectedMessageError for any
// message the current state does not expect.
package router

import (
	"fmt"
	"time"

	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
)

// UnexpectedMessageError is returned when a message arrives whose Kind
// the current state does not expect. Advance terminates the session when
// it gets one; this package builds no FAILED_SequenceError response.
type UnexpectedMessageError struct {
	State session.State
	Kind  message.Kind
}

func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("router: unexpected %s in state %s", e.Kind, e.State)
}

// Transition is one edge of the table: from State, message.Kind is
// expected, and a successful exchange advances to To.
type Transition struct {
	From session.State
	Kind message.Kind
	To   session.State
}

// Table is a (state, kind) -> next-state lookup. It holds one table per
// dialect since -2 and -20 name different intermediate states
// (AuthorizationSetup, VehicleCheckIn/Out, MeteringConfirmation exist
// only in -20) even though both mirror the same overall shape (spec
// §4.5/§4.6).
type Table struct {
	edges map[session.State]map[message.Kind]session.State
}

func newTable(transitions []Transition) *Table {
	t := &Table{edges: make(map[session.State]map[message.Kind]session.State)}
	for _, tr := range transitions {
		if t.edges[tr.From] == nil {
			t.edges[tr.From] = make(map[message.Kind]session.State)
		}
		t.edges[tr.From][tr.Kind] = tr.To
	}
	return t
}

// Expect reports the Kind the table allows from the current state, for
// callers that need to know before a message arrives (e.g. the EVCC
// deciding what to send next). Returns KindUnknown if more than one kind
// is legal from this state (the charge loop self-loop plus its exit
// edge) — those callers branch on their own business logic instead.
func (t *Table) Expect(state session.State) message.Kind {
	edges := t.edges[state]
	if len(edges) != 1 {
		return message.KindUnknown
	}
	for k := range edges {
		return k
	}
	return message.KindUnknown
}

// LegalKinds lists every Kind the table permits from state, in no
// particular order. The wire format carries no explicit kind tag (spec
// §4.4 design note), so a responder facing more than one legal next
// message — the charge loop's self-loop plus its exit edge, chiefly —
// must try decoding against each candidate until one succeeds; this is
// the set it tries.
func (t *Table) LegalKinds(state session.State) []message.Kind {
	edges := t.edges[state]
	kinds := make([]message.Kind, 0, len(edges))
	for k := range edges {
		kinds = append(kinds, k)
	}
	return kinds
}

// Next validates that kind is legal from state and returns the state to
// advance to. Returns *UnexpectedMessageError if kind is not one the
// table permits from state.
func (t *Table) Next(state session.State, kind message.Kind) (session.State, error) {
	edges := t.edges[state]
	if edges == nil {
		return state, &UnexpectedMessageError{State: state, Kind: kind}
	}
	to, ok := edges[kind]
	if !ok {
		return state, &UnexpectedMessageError{State: state, Kind: kind}
	}
	return to, nil
}

// Advance validates kind against sess's current state and, on success,
// mutates sess.State to the next state and re-arms the sequence timer.
// On failure it terminates sess with TerminationProtocolError and
// returns the error unchanged, so the caller's only remaining job is to
// send the FAILED_SequenceError response and close.
func (t *Table) Advance(sess *session.Session, kind message.Kind, now time.Time) error {
	next, err := t.Next(sess.State, kind)
	if err != nil {
		sess.Terminate(session.TerminationProtocolError, err.Error())
		return err
	}
	sess.State = next
	sess.ArmSequence(now)
	return nil
}
