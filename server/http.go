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
	"errors"
	"io"
	"net/http"

	"rivaas.dev/webdriver/endpoint"
	"rivaas.dev/webdriver/message"
	"rivaas.dev/webdriver/protocol"
)

// ServeHTTP implements http.Handler. It reads the request body, matches
// the method and path against the endpoint table, decodes a Message, and
// sends it to the dispatcher — blocking until a reply arrives or the
// request's context is canceled.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, protocol.New(protocol.UnknownError, "failed to read request body"))
		return
	}
	s.logger.Debug("got request", "method", r.Method, "path", r.URL.Path)

	msg, err := message.Decode(s.table, endpoint.Method(r.Method), r.URL.Path, body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := s.dispatcher.Dispatch(r.Context(), msg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, resp)
}

func (s *Server) writeResponse(w http.ResponseWriter, resp protocol.Response) {
	payload, err := resp.MarshalJSON()
	if err != nil {
		s.writeError(w, protocol.Newf(protocol.UnknownError, "failed to encode response: %v", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		s.logger.Warn("failed to write response body", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var werr *protocol.Error
	if !errors.As(err, &werr) {
		werr = protocol.New(protocol.UnknownError, err.Error())
	}

	payload, marshalErr := werr.MarshalJSON()
	if marshalErr != nil {
		http.Error(w, werr.Error(), werr.HTTPStatus())
		return
	}
	s.logger.Debug("returning error", "status", werr.Status, "http_status", werr.HTTPStatus())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(werr.HTTPStatus())
	if _, writeErr := w.Write(payload); writeErr != nil {
		s.logger.Warn("failed to write error body", "error", writeErr)
	}
}
