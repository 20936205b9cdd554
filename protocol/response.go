package protocol

import "encoding/json"

// ResponseKind discriminates the Response union.
type ResponseKind string

const (
	ResponseGeneric        ResponseKind = "generic"
	ResponseNewSession     ResponseKind = "new_session"
	ResponseDeleteSession  ResponseKind = "delete_session"
	ResponseWindowSize     ResponseKind = "window_size"
	ResponseWindowPosition ResponseKind = "window_position"
	ResponseElementRect    ResponseKind = "element_rect"
	ResponseCookie         ResponseKind = "cookie"
)

// Response is a successful command result. The server writes its
// MarshalJSON output as the whole HTTP reply body, with no further
// envelope around it.
type Response struct {
	Kind ResponseKind

	Generic         json.RawMessage
	NewSession      NewSessionResponse
	WindowSize      WindowSizeResponse
	WindowPosition  WindowPositionResponse
	ElementRect     ElementRectResponse
	Cookie          CookieResponse
}

// NewSessionResponse is the body of a successful NewSession.
type NewSessionResponse struct {
	SessionID string          `json:"sessionId"`
	Value     json.RawMessage `json:"value"`
}

// WindowSizeResponse is the body of a successful GetWindowSize/SetWindowSize.
type WindowSizeResponse struct {
	Width  uint64 `json:"width"`
	Height uint64 `json:"height"`
}

// WindowPositionResponse is the body of a successful
// GetWindowPosition/SetWindowPosition.
type WindowPositionResponse struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// ElementRectResponse is the body of a successful GetElementRect.
type ElementRectResponse struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CookieResponse is the body of a successful GetCookies/GetCookie.
type CookieResponse struct {
	Value []Cookie `json:"value"`
}

// MarshalJSON encodes the Response per its Kind. DeleteSession always
// produces the literal "{}" regardless of payload, per spec.md §3.
func (r Response) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ResponseDeleteSession:
		return []byte("{}"), nil
	case ResponseGeneric:
		if r.Generic == nil {
			return []byte("null"), nil
		}
		return r.Generic, nil
	case ResponseNewSession:
		return json.Marshal(r.NewSession)
	case ResponseWindowSize:
		return json.Marshal(r.WindowSize)
	case ResponseWindowPosition:
		return json.Marshal(r.WindowPosition)
	case ResponseElementRect:
		return json.Marshal(r.ElementRect)
	case ResponseCookie:
		return json.Marshal(r.Cookie)
	default:
		return nil, New(UnknownError, "unknown response kind "+string(r.Kind))
	}
}

// NewGenericResponse wraps an arbitrary JSON value as a Response.
func NewGenericResponse(value json.RawMessage) Response {
	return Response{Kind: ResponseGeneric, Generic: value}
}

// NewDeleteSessionResponse builds the fixed DeleteSession response.
func NewDeleteSessionResponse() Response {
	return Response{Kind: ResponseDeleteSession}
}
