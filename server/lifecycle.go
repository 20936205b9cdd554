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

package server

import (
	"context"
	"fmt"
	"net/http"
)

// Start runs the dispatcher goroutine and serves HTTP on addr until ctx is
// canceled, then gracefully shuts the HTTP server down and waits for the
// dispatcher to stop before returning.
//
// Unlike stdlib's http.Server, which separates ListenAndServe from
// Shutdown, Start combines both under one context-driven lifecycle — the
// same pattern the teacher's app.Start uses a context for: pass a context
// built with signal.NotifyContext for shutdown on OS signals.
//
// Example:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer cancel()
//
//	if err := srv.Start(ctx, ":4444"); err != nil {
//	    log.Fatal(err)
//	}
func (s *Server) Start(ctx context.Context, addr string) error {
	dispatchCtx, stopDispatcher := context.WithCancel(ctx)
	defer stopDispatcher()
	dispatcherDone := make(chan struct{})
	go func() {
		s.dispatcher.Run(dispatchCtx)
		close(dispatcherDone)
	}()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: s.timeouts.readHeader,
		ReadTimeout:       s.timeouts.read,
		WriteTimeout:      s.timeouts.write,
		IdleTimeout:       s.timeouts.idle,
	}
	// spec.md §4.6: keep-alive is disabled, one connection per command.
	httpServer.SetKeepAlivesEnabled(false)

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("http server failed: %w", err)
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		stopDispatcher()
		<-dispatcherDone
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down", "reason", ctx.Err())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.write)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		<-dispatcherDone
		return fmt.Errorf("http server forced to shutdown: %w", err)
	}

	<-dispatcherDone
	s.logger.Info("server exited")
	return nil
}
