package webdriver

import (
	"rivaas.dev/webdriver/dispatch"
	"rivaas.dev/webdriver/server"
)

// Handler is the capability callers implement to actually drive a browser
// (or a fake, for tests) under a dispatched WebDriver session. See
// dispatch.Handler.
type Handler = dispatch.Handler

// Session identifies the single active WebDriver session a Handler is
// invoked with. See dispatch.Session.
type Session = dispatch.Session

// Option configures a Server at construction. See server.Option.
type Option = server.Option

// Server is the WebDriver HTTP front end. See server.Server.
type Server = server.Server

// New builds a Server around handler. See server.New.
func New(handler Handler, opts ...Option) (*Server, error) {
	return server.New(handler, opts...)
}

// MustNew is New, panicking on an invalid extension route template.
func MustNew(handler Handler, opts ...Option) *Server {
	return server.MustNew(handler, opts...)
}
