// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server is the HTTP front end: it owns the endpoint table, reads
// each request's body, decodes it into a message.Message, hands it to a
// dispatch.Dispatcher, and writes the resulting protocol.Response or
// protocol.Error back as JSON.
//
// Grounded on the original juangj/webdriver-rust server/mod.rs's
// HttpHandler and start() — net/http.Server and context.Context take the
// place of hyper::server and the explicit DispatchMessage::Quit, in the
// idiom the teacher's own app.Start/app.Hooks use for lifecycle.
package server

import (
	"time"

	"rivaas.dev/webdriver/dispatch"
	"rivaas.dev/webdriver/endpoint"
	"rivaas.dev/webdriver/internal/wlog"
)

// Server is the WebDriver HTTP front end. Construct one with New or
// MustNew, then run it with Start.
type Server struct {
	handler    dispatch.Handler
	table      *endpoint.Table
	dispatcher *dispatch.Dispatcher
	logger     *wlog.Logger
	timeouts   serverTimeouts
}

type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func defaultServerTimeouts() serverTimeouts {
	return serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// Option configures a Server at construction time.
type Option func(*config)

type config struct {
	logger          *wlog.Logger
	timeouts        serverTimeouts
	extensionRoutes []endpoint.ExtensionRoute
	dispatchBacklog int
}

// WithLogger attaches a logger used for request and dispatch diagnostics.
func WithLogger(l *wlog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithServerTimeouts configures the underlying http.Server's timeouts.
//
// Defaults (if not set):
//
//	ReadHeaderTimeout: 5s
//	ReadTimeout:       15s
//	WriteTimeout:      30s
//	IdleTimeout:       60s
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(c *config) {
		c.timeouts = serverTimeouts{readHeader: readHeader, read: read, write: write, idle: idle}
	}
}

// WithExtensionRoute registers one extension endpoint, matched after every
// standard route. See endpoint.WithExtensionRoute.
func WithExtensionRoute(method endpoint.Method, path string, ext endpoint.Extension) Option {
	return func(c *config) {
		c.extensionRoutes = append(c.extensionRoutes, endpoint.ExtensionRoute{Method: method, Path: path, Extension: ext})
	}
}

// WithDispatchBacklog sets how many in-flight requests may queue waiting
// for the dispatcher goroutine. See dispatch.WithBacklog.
func WithDispatchBacklog(n int) Option {
	return func(c *config) { c.dispatchBacklog = n }
}

// New builds a Server around handler, compiling the endpoint table
// (standard routes plus any registered via WithExtensionRoute) and the
// session dispatcher. It returns an error only if an extension route's
// path template is malformed.
func New(handler dispatch.Handler, opts ...Option) (*Server, error) {
	cfg := &config{logger: wlog.Discard(), timeouts: defaultServerTimeouts()}
	for _, opt := range opts {
		opt(cfg)
	}

	tableOpts := make([]endpoint.Option, 0, len(cfg.extensionRoutes)+1)
	tableOpts = append(tableOpts, endpoint.WithLogger(cfg.logger))
	for _, r := range cfg.extensionRoutes {
		tableOpts = append(tableOpts, endpoint.WithExtensionRoute(r.Method, r.Path, r.Extension))
	}
	table, err := endpoint.New(tableOpts...)
	if err != nil {
		return nil, err
	}

	dispatcher := dispatch.New(handler, dispatch.WithLogger(cfg.logger), dispatch.WithBacklog(cfg.dispatchBacklog))

	return &Server{
		handler:    handler,
		table:      table,
		dispatcher: dispatcher,
		logger:     cfg.logger,
		timeouts:   cfg.timeouts,
	}, nil
}

// MustNew is New, panicking on an invalid extension route template.
func MustNew(handler dispatch.Handler, opts ...Option) *Server {
	s, err := New(handler, opts...)
	if err != nil {
		panic("server: " + err.Error())
	}
	return s
}
