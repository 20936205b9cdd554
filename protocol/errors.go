package protocol

import (
	"encoding/json"
	"fmt"
)

// ErrorStatus is the closed set of WebDriver error kinds from the W3C
// WebDriver specification. Its string value is the wire representation
// used in the "error" field of an error response.
type ErrorStatus string

// The taxonomy mandated by the WebDriver specification. Each kind maps to
// exactly one HTTP status and a terminal bit that says whether receiving
// this error from a handler tears down the current session (see
// ErrorStatus.Terminal).
const (
	ElementNotSelectable      ErrorStatus = "element not selectable"
	ElementNotVisible         ErrorStatus = "element not visible"
	InvalidArgument           ErrorStatus = "invalid argument"
	InvalidCookieDomain       ErrorStatus = "invalid cookie domain"
	InvalidElementCoordinates ErrorStatus = "invalid element coordinates"
	InvalidElementState       ErrorStatus = "invalid element state"
	InvalidSelector           ErrorStatus = "invalid selector"
	InvalidSessionID          ErrorStatus = "invalid session id"
	JavascriptError           ErrorStatus = "javascript error"
	MoveTargetOutOfBounds     ErrorStatus = "move target out of bounds"
	NoSuchAlert               ErrorStatus = "no such alert"
	NoSuchElement             ErrorStatus = "no such element"
	NoSuchFrame               ErrorStatus = "no such frame"
	NoSuchWindow              ErrorStatus = "no such window"
	ScriptTimeout             ErrorStatus = "script timeout"
	SessionNotCreated         ErrorStatus = "session not created"
	StaleElementReference     ErrorStatus = "stale element reference"
	Timeout                   ErrorStatus = "timeout"
	UnableToSetCookie         ErrorStatus = "unable to set cookie"
	UnexpectedAlertOpen       ErrorStatus = "unexpected alert open"
	UnknownCommand            ErrorStatus = "unknown command"
	UnknownError              ErrorStatus = "unknown error"
	UnknownPath               ErrorStatus = "unknown path"
	UnknownMethod             ErrorStatus = "unknown method"
	UnsupportedOperation      ErrorStatus = "unsupported operation"
)

type statusInfo struct {
	httpStatus int
	terminal   bool
}

var statusTable = map[ErrorStatus]statusInfo{
	ElementNotSelectable:      {400, false},
	ElementNotVisible:         {400, false},
	InvalidArgument:           {400, false},
	InvalidCookieDomain:       {400, false},
	InvalidElementCoordinates: {400, false},
	InvalidElementState:       {400, false},
	InvalidSelector:           {400, false},
	InvalidSessionID:          {404, true},
	JavascriptError:           {500, false},
	MoveTargetOutOfBounds:     {500, false},
	NoSuchAlert:               {400, false},
	NoSuchElement:             {404, false},
	NoSuchFrame:               {400, false},
	NoSuchWindow:              {400, false},
	ScriptTimeout:             {408, false},
	SessionNotCreated:         {500, true},
	StaleElementReference:     {400, false},
	Timeout:                   {408, false},
	UnableToSetCookie:         {500, false},
	UnexpectedAlertOpen:       {500, false},
	UnknownCommand:            {404, false},
	UnknownError:              {500, false},
	UnknownPath:               {404, false},
	UnknownMethod:             {405, false},
	UnsupportedOperation:      {500, false},
}

// HTTPStatus returns the HTTP status code mandated for this error kind.
// Unknown kinds (which should not occur for a closed enum, but a caller
// could construct one) map to 500.
func (s ErrorStatus) HTTPStatus() int {
	if info, ok := statusTable[s]; ok {
		return info.httpStatus
	}
	return 500
}

// Terminal reports whether an error of this kind requires the dispatcher
// to delete the current session before replying.
func (s ErrorStatus) Terminal() bool {
	return statusTable[s].terminal
}

// Error is the WebDriver error envelope. It implements the error interface
// and is the only error type that crosses the protocol/endpoint/message/
// dispatch package boundary.
type Error struct {
	Status     ErrorStatus
	Message    string
	Stacktrace string
}

// New builds an Error with the given kind and message.
func New(status ErrorStatus, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(status ErrorStatus, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return string(e.Status) + ": " + e.Message
}

// HTTPStatus returns the status code this error maps to.
func (e *Error) HTTPStatus() int {
	return e.Status.HTTPStatus()
}

// errorEnvelope is the exact wire shape from spec section 7.
type errorEnvelope struct {
	Status     int    `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

// MarshalJSON encodes the error as {"status","error","message","stacktrace"}.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorEnvelope{
		Status:     e.HTTPStatus(),
		Error:      string(e.Status),
		Message:    e.Message,
		Stacktrace: e.Stacktrace,
	})
}
