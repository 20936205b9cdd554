package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/webdriver/message"
	"rivaas.dev/webdriver/protocol"
)

// fakeHandler lets tests script exactly what HandleCommand returns and
// records every call it receives, including the session it was handed.
type fakeHandler struct {
	mu         sync.Mutex
	respond    func(session *Session, msg message.Message) (protocol.Response, error)
	calls      []message.Message
	deletedIDs []string
}

func (h *fakeHandler) HandleCommand(session *Session, msg message.Message) (protocol.Response, error) {
	h.mu.Lock()
	h.calls = append(h.calls, msg)
	h.mu.Unlock()
	return h.respond(session, msg)
}

func (h *fakeHandler) DeleteSession(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if session != nil {
		h.deletedIDs = append(h.deletedIDs, session.ID)
	}
}

func (h *fakeHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.calls)
}

func strPtr(s string) *string { return &s }

func runDispatcher(t *testing.T, d *Dispatcher) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)
	t.Cleanup(cancel)
	return cancel
}

func TestCommandBeforeSessionIsInvalidSessionID(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		t.Fatal("handler should not be invoked")
		return protocol.Response{}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindGetTitle}})
	require.Error(t, err)
	var werr *protocol.Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, protocol.InvalidSessionID, werr.Status)
	assert.Equal(t, 0, h.callCount())
}

// TestSessionScopedCommandBeforeSessionIsInvalidSessionID reproduces
// spec.md §8 scenario 2: GET /session/s1/url before any NewSession must be
// rejected as InvalidSessionId without reaching the handler, even though
// the route captured a sessionId from the path.
func TestSessionScopedCommandBeforeSessionIsInvalidSessionID(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		t.Fatal("handler should not be invoked")
		return protocol.Response{}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{
		SessionID: strPtr("s1"),
		Command:   protocol.Command{Kind: protocol.KindGetCurrentURL},
	})
	require.Error(t, err)
	var werr *protocol.Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, protocol.InvalidSessionID, werr.Status)
	assert.Equal(t, 0, h.callCount())
}

func TestStatusAllowedWithoutSession(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		return protocol.NewGenericResponse(nil), nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindStatus}})
	require.NoError(t, err)
	assert.Equal(t, 1, h.callCount())
}

func TestNewSessionEstablishesSession(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(session *Session, msg message.Message) (protocol.Response, error) {
		assert.Nil(t, session)
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	resp, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", resp.NewSession.SessionID)

	// A second NewSession without a session id is now rejected.
	_, err = d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.Error(t, err)
	var werr *protocol.Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, protocol.SessionNotCreated, werr.Status)
}

func TestMatchingSessionIDIsRoutedThrough(t *testing.T) {
	t.Parallel()

	var seen *Session
	h := &fakeHandler{respond: func(session *Session, msg message.Message) (protocol.Response, error) {
		if msg.Command.Kind == protocol.KindNewSession {
			return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
		}
		seen = session
		return protocol.NewGenericResponse(nil), nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-1"), Command: protocol.Command{Kind: protocol.KindGetTitle}})
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "sess-1", seen.ID)
}

func TestMismatchedSessionIDIsRejected(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)

	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		t.Fatal("handler should not be invoked for a mismatched session")
		return protocol.Response{}, nil
	}
	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-2"), Command: protocol.Command{Kind: protocol.KindGetTitle}})
	require.Error(t, err)
	var werr *protocol.Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, protocol.InvalidSessionID, werr.Status)
}

func TestDeleteSessionClearsSession(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)

	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		return protocol.NewDeleteSessionResponse(), nil
	}
	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-1"), Command: protocol.Command{Kind: protocol.KindDeleteSession}})
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, h.deletedIDs)

	// The session is gone: the next command carrying its id is rejected as
	// InvalidSessionId, just as before any session existed.
	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-1"), Command: protocol.Command{Kind: protocol.KindGetTitle}})
	require.Error(t, err)
	var werr *protocol.Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, protocol.InvalidSessionID, werr.Status)
}

func TestDeleteSessionClearsSessionEvenOnHandlerError(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)

	// A non-terminal error from DeleteSession's handler still clears the
	// session: spec.md §4.5 says DeleteSession clears it regardless of
	// success.
	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{}, protocol.New(protocol.NoSuchWindow, "window already gone")
	}
	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-1"), Command: protocol.Command{Kind: protocol.KindDeleteSession}})
	require.Error(t, err)
	assert.Equal(t, []string{"sess-1"}, h.deletedIDs)

	// A fresh NewSession is allowed since no session is tracked anymore.
	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-2"}}, nil
	}
	resp, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)
	assert.Equal(t, "sess-2", resp.NewSession.SessionID)
}

func TestTerminalErrorTearsDownSession(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)

	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{}, protocol.New(protocol.SessionNotCreated, "backend crashed")
	}
	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-1"), Command: protocol.Command{Kind: protocol.KindGetTitle}})
	require.Error(t, err)
	assert.Equal(t, []string{"sess-1"}, h.deletedIDs)

	// A fresh NewSession is required after a terminal error.
	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-2"}}, nil
	}
	resp, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)
	assert.Equal(t, "sess-2", resp.NewSession.SessionID)
}

func TestNonTerminalErrorKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
	}}
	d := New(h)
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)

	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		return protocol.Response{}, protocol.New(protocol.NoSuchElement, "no such element")
	}
	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-1"), Command: protocol.Command{Kind: protocol.KindGetTitle}})
	require.Error(t, err)
	assert.Empty(t, h.deletedIDs)

	// The session is still active: another command carrying its id still
	// routes through rather than being treated as session-less.
	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		return protocol.NewGenericResponse(nil), nil
	}
	_, err = d.Dispatch(context.Background(), message.Message{SessionID: strPtr("sess-1"), Command: protocol.Command{Kind: protocol.KindGetTitle}})
	require.NoError(t, err)
}

// TestCommandsAreSerialized fires many concurrent Dispatch calls at a
// handler that tracks how many calls are in flight at once via atomic
// counters, verifying the dispatcher goroutine processes exactly one at a
// time with no interleaving, matching spec.md §8 scenario 6.
func TestCommandsAreSerialized(t *testing.T) {
	t.Parallel()

	var inFlight int32
	var maxObserved int32
	h := &fakeHandler{}
	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			cur := atomic.LoadInt32(&maxObserved)
			if n <= cur || atomic.CompareAndSwapInt32(&maxObserved, cur, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return protocol.Response{Kind: protocol.ResponseNewSession, NewSession: protocol.NewSessionResponse{SessionID: "sess-1"}}, nil
	}

	d := New(h, WithBacklog(16))
	runDispatcher(t, d)

	_, err := d.Dispatch(context.Background(), message.Message{Command: protocol.Command{Kind: protocol.KindNewSession}})
	require.NoError(t, err)
	h.respond = func(*Session, message.Message) (protocol.Response, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			cur := atomic.LoadInt32(&maxObserved)
			if n <= cur || atomic.CompareAndSwapInt32(&maxObserved, cur, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return protocol.NewGenericResponse(nil), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Dispatch(context.Background(), message.Message{
				SessionID: strPtr("sess-1"),
				Command:   protocol.Command{Kind: protocol.KindGetTitle},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxObserved))
}

func TestDispatchCanceledContextReturnsError(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{respond: func(*Session, message.Message) (protocol.Response, error) {
		return protocol.NewGenericResponse(nil), nil
	}}
	d := New(h) // Run is never started: the send blocks until ctx cancels.

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := d.Dispatch(ctx, message.Message{Command: protocol.Command{Kind: protocol.KindStatus}})
	require.Error(t, err)
}
