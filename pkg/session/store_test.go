package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
)

type fakeMirror struct {
	written map[session.ID]*session.Session
	deleted map[session.ID]bool
	failNext bool
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{written: make(map[session.ID]*session.Session), deleted: make(map[session.ID]bool)}
}

func (m *fakeMirror) Write(s *session.Session) error {
	if m.failNext {
		m.failNext = false
		return errBoom
	}
	m.written[s.ID] = s
	return nil
}

func (m *fakeMirror) Delete(id session.ID) error {
	m.deleted[id] = true
	return nil
}

var errBoom = errFake("boom")

type errFake string

func (e errFake) Error() string { return string(e) }

func TestStore_PutGetDelete(t *testing.T) {
	mirror := newFakeMirror()
	store := session.NewStore(mirror)

	id := session.ID{1, 2, 3, 4, 5, 6, 7, 8}
	s := session.New(id, session.RoleSECC, message.Dialect2, time.Now())

	require.NoError(t, store.Put(s))
	require.Equal(t, 1, store.Len())
	require.Contains(t, mirror.written, id)

	got, ok := store.Get(id)
	require.True(t, ok)
	require.Same(t, s, got)

	store.Delete(id)
	require.Equal(t, 0, store.Len())
	require.True(t, mirror.deleted[id])

	_, ok = store.Get(id)
	require.False(t, ok)
}

func TestStore_MirrorFailureDoesNotAbortPut(t *testing.T) {
	mirror := newFakeMirror()
	mirror.failNext = true
	store := session.NewStore(mirror)

	id := session.ID{9, 9, 9, 9, 9, 9, 9, 9}
	s := session.New(id, session.RoleEVCC, message.Dialect20, time.Now())

	err := store.Put(s)
	require.Error(t, err)

	_, ok := store.Get(id)
	require.True(t, ok, "session must be registered even when the mirror write fails")
}

func TestStore_Range(t *testing.T) {
	store := session.NewStore(nil)
	for i := 0; i < 3; i++ {
		id := session.ID{byte(i), 0, 0, 0, 0, 0, 0, 0}
		require.NoError(t, store.Put(session.New(id, session.RoleSECC, message.Dialect2, time.Now())))
	}

	count := 0
	store.Range(func(*session.Session) bool {
		count++
		return true
	})
	require.Equal(t, 3, count)
}

func TestTimer_ArmExpireCancel(t *testing.T) {
	now := time.Now()
	var timer session.Timer
	require.False(t, timer.Armed())

	timer.Arm(session.TimerSequence, 10*time.Millisecond, now)
	require.True(t, timer.Armed())
	require.False(t, timer.Expired(now))
	require.True(t, timer.Expired(now.Add(20*time.Millisecond)))

	timer.Cancel()
	require.False(t, timer.Armed())
}

func TestSession_TerminateRecordsReason(t *testing.T) {
	s := session.New(session.ID{}, session.RoleSECC, message.Dialect2, time.Now())
	s.Terminate(session.TerminationTimeout, "sequence timeout waiting on CableCheckReq")

	require.Equal(t, session.StateTerminated, s.State)
	require.Equal(t, session.TerminationTimeout, s.TerminationReason)
	require.False(t, s.Timer.Armed())
}
