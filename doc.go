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

// Package webdriver implements the server side of the W3C WebDriver wire
// protocol: decoding HTTP requests into typed commands, dispatching them
// one at a time against a session, and encoding the results back to JSON.
//
// It does not talk to a browser. The protocol, endpoint, message, and
// dispatch packages are backend-agnostic; callers supply a
// dispatch.Handler that knows how to actually drive a browser (or a fake,
// for tests) and this module handles the wire format, routing, and
// session bookkeeping around it.
//
// # Key Features
//
//   - Full W3C WebDriver command and parameter types, including the
//     tagged-union shapes (actions, frame ids) the spec requires
//   - The standard endpoint table plus legacy JSON Wire Protocol routes,
//     with support for registering additional extension endpoints
//   - A single-goroutine session dispatcher enforcing strict command
//     ordering and session-identity rules
//   - An http.Handler front end wiring the above together
//
// # Constructor Pattern
//
// Like the rest of this module's packages, server.New/endpoint.New return
// an error only when given a malformed route template (a configuration
// mistake caught during development); everything else about construction
// cannot fail. MustNew variants exist for the common case of a static,
// trusted configuration. All options use the "With" prefix.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "os"
//	    "os/signal"
//	    "syscall"
//
//	    "rivaas.dev/webdriver/dispatch"
//	    "rivaas.dev/webdriver/message"
//	    "rivaas.dev/webdriver/protocol"
//	    "rivaas.dev/webdriver/server"
//	)
//
//	type browserHandler struct{}
//
//	func (browserHandler) HandleCommand(session *dispatch.Session, msg message.Message) (protocol.Response, error) {
//	    // Drive a real browser here.
//	    return protocol.NewGenericResponse(nil), nil
//	}
//
//	func (browserHandler) DeleteSession(session *dispatch.Session) {}
//
//	func main() {
//	    srv := server.MustNew(browserHandler{})
//
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	    defer cancel()
//
//	    if err := srv.Start(ctx, ":4444"); err != nil {
//	        panic(err)
//	    }
//	}
//
// # Package Layout
//
//   - protocol — commands, parameters, responses, errors: the typed wire format
//   - endpoint — the (method, path) → command-kind route table and matcher
//   - message  — turns a matched route and request body into a Message
//   - dispatch — the session dispatcher and the Handler interface backends implement
//   - server   — the http.Handler and Start/Shutdown lifecycle tying it together
package webdriver
