// Package dispatch implements the session dispatcher: a single goroutine
// that serializes every WebDriver command, owns the one active Session,
// and enforces the session-identity rules from spec.md §4.5.
//
// Grounded on the original juangj/webdriver-rust server/mod.rs's
// Dispatcher/Handler/DispatchMessage; the single-goroutine-plus-channel
// shape replaces the original's single-thread-plus-mpsc-channel shape
// directly, context.Context replacing the explicit Quit message for
// shutdown, in the idiom the teacher's own lifecycle hooks use.
package dispatch

import (
	"context"
	"errors"

	"rivaas.dev/webdriver/internal/wlog"
	"rivaas.dev/webdriver/message"
	"rivaas.dev/webdriver/protocol"
)

// Session identifies the single active WebDriver session a Dispatcher
// tracks. There is never more than one at a time; see spec.md §4.5.
type Session struct {
	ID string
}

// Handler executes commands against whatever backs the session (a real
// browser driver, a fake for tests, ...). session is nil until a
// NewSession command succeeds and becomes nil again after DeleteSession
// runs; HandleCommand never sees it nil for anything but NewSession or
// Status.
type Handler interface {
	HandleCommand(session *Session, msg message.Message) (protocol.Response, error)
	DeleteSession(session *Session)
}

// Dispatcher is not safe for concurrent use by multiple goroutines; it is
// meant to be driven by exactly one, started with Run. Callers reach it
// only through Dispatch, which is safe to call concurrently.
type Dispatcher struct {
	handler  Handler
	session  *Session
	logger   *wlog.Logger
	requests chan request
}

type request struct {
	msg   message.Message
	reply chan result
}

type result struct {
	response protocol.Response
	err      error
}

// Option configures a Dispatcher at construction.
type Option func(*config)

type config struct {
	logger  *wlog.Logger
	backlog int
}

// WithLogger attaches a logger for dispatch-level diagnostics.
func WithLogger(l *wlog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithBacklog sets how many in-flight Dispatch calls may queue before
// Dispatch blocks. The default, 0, makes every Dispatch call rendezvous
// directly with Run — correct for the "one HTTP request in flight"
// deployment spec.md assumes, but callers fronting the dispatcher with
// multiple HTTP goroutines may want a small buffer instead of blocking.
func WithBacklog(n int) Option {
	return func(c *config) { c.backlog = n }
}

// New builds a Dispatcher around handler. It does not start Run; callers
// must do that in their own goroutine.
func New(handler Handler, opts ...Option) *Dispatcher {
	cfg := &config{logger: wlog.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Dispatcher{
		handler:  handler,
		logger:   cfg.logger,
		requests: make(chan request, cfg.backlog),
	}
}

// Run serializes commands until ctx is canceled. It must run in its own
// goroutine; Dispatch is how other goroutines submit work to it.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("dispatcher stopping")
			return
		case req := <-d.requests:
			resp, err := d.handle(req.msg)
			select {
			case req.reply <- result{response: resp, err: err}:
			default:
				d.logger.Warn("dropping response: caller is no longer listening")
			}
		}
	}
}

// Dispatch submits msg to the dispatcher goroutine running Run and blocks
// for its reply, or until ctx is canceled. Safe to call from any number
// of goroutines; commands still execute one at a time, in the order
// Dispatch calls reach the channel.
func (d *Dispatcher) Dispatch(ctx context.Context, msg message.Message) (protocol.Response, error) {
	req := request{msg: msg, reply: make(chan result, 1)}

	select {
	case d.requests <- req:
	case <-ctx.Done():
		return protocol.Response{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.response, res.err
	case <-ctx.Done():
		return protocol.Response{}, ctx.Err()
	}
}

// handle runs one command to completion: check the session, invoke the
// handler, then update session state from the outcome. It must only ever
// be called from the Run goroutine.
func (d *Dispatcher) handle(msg message.Message) (protocol.Response, error) {
	if err := d.checkSession(msg); err != nil {
		return protocol.Response{}, err
	}

	resp, err := d.handler.HandleCommand(d.session, msg)

	switch {
	case msg.Command.Kind == protocol.KindDeleteSession:
		// DeleteSession clears the session regardless of success, per
		// spec.md §4.5.
		d.deleteSession()
	case err == nil && resp.Kind == protocol.ResponseNewSession:
		d.session = &Session{ID: resp.NewSession.SessionID}
	case err != nil:
		var werr *protocol.Error
		if errors.As(err, &werr) && werr.Status.Terminal() {
			d.deleteSession()
		}
	}

	return resp, err
}

func (d *Dispatcher) deleteSession() {
	d.logger.Debug("deleting session")
	d.handler.DeleteSession(d.session)
	d.session = nil
}

// checkSession enforces spec.md §4.5's session-identity table before the
// handler ever sees the command.
func (d *Dispatcher) checkSession(msg message.Message) error {
	if msg.SessionID != nil {
		if d.session == nil {
			return protocol.New(protocol.InvalidSessionID, "tried to run a command before creating a session")
		}
		if d.session.ID != *msg.SessionID {
			return protocol.Newf(protocol.InvalidSessionID,
				"got unexpected session id %s, expected %s", *msg.SessionID, d.session.ID)
		}
		return nil
	}

	if d.session != nil {
		switch msg.Command.Kind {
		case protocol.KindStatus:
			return nil
		case protocol.KindNewSession:
			return protocol.New(protocol.SessionNotCreated, "session is already started")
		default:
			return protocol.New(protocol.UnknownError, "got a command with no session id")
		}
	}

	switch msg.Command.Kind {
	case protocol.KindNewSession, protocol.KindStatus:
		return nil
	default:
		return protocol.New(protocol.InvalidSessionID, "tried to run a command before creating a session")
	}
}
