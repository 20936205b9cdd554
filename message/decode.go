// Package message turns a matched endpoint, its path captures, and a raw
// request body into a typed Message ready for the dispatcher.
//
// Grounded on the original juangj/webdriver-rust server/message.rs's
// Message::from_http: one match arm per endpoint, selecting the
// parameter record to parse the body into and/or the path placeholders
// to extract.
package message

import (
	"encoding/json"

	"rivaas.dev/webdriver/endpoint"
	"rivaas.dev/webdriver/protocol"
)

// Message is a decoded command paired with the session id extracted from
// the path, when the endpoint carries one. NewSession and Status have no
// {sessionId} placeholder, so SessionID is nil for those.
type Message struct {
	SessionID *string
	Command   protocol.Command
}

// Decode matches (method, path) against table and decodes body into a
// Message. It is the composition of endpoint.Table.Match and FromMatch.
func Decode(table *endpoint.Table, method endpoint.Method, path string, body []byte) (Message, error) {
	kind, captures, ext, err := table.Match(method, path)
	if err != nil {
		return Message{}, err
	}
	return FromMatch(kind, captures, ext, body)
}

// FromMatch decodes a Message from an already-matched endpoint kind, its
// path captures, its matched Extension (nil for standard endpoints), and
// the raw request body.
func FromMatch(kind protocol.Kind, captures endpoint.Captures, ext endpoint.Extension, body []byte) (Message, error) {
	var sessionID *string
	if v, ok := captures["sessionId"]; ok {
		sessionID = &v
	}

	cmd, err := decodeCommand(kind, captures, ext, body)
	if err != nil {
		return Message{}, err
	}
	return Message{SessionID: sessionID, Command: cmd}, nil
}

func decodeCommand(kind protocol.Kind, captures endpoint.Captures, ext endpoint.Extension, body []byte) (protocol.Command, error) {
	switch kind {
	case protocol.KindNewSession:
		params, err := decodeBody[protocol.NewSessionParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, NewSession: params}, nil

	case protocol.KindDeleteSession,
		protocol.KindGetCurrentURL,
		protocol.KindGoBack,
		protocol.KindGoForward,
		protocol.KindRefresh,
		protocol.KindGetTitle,
		protocol.KindGetPageSource,
		protocol.KindGetWindowHandle,
		protocol.KindGetWindowHandles,
		protocol.KindCloseWindow,
		protocol.KindGetWindowSize,
		protocol.KindGetWindowPosition,
		protocol.KindMaximizeWindow,
		protocol.KindFullscreenWindow,
		protocol.KindSwitchToParentFrame,
		protocol.KindGetActiveElement,
		protocol.KindGetCookies,
		protocol.KindDeleteCookies,
		protocol.KindGetTimeouts,
		protocol.KindReleaseActions,
		protocol.KindDismissAlert,
		protocol.KindAcceptAlert,
		protocol.KindGetAlertText,
		protocol.KindTakeScreenshot,
		protocol.KindStatus:
		return protocol.Command{Kind: kind}, nil

	case protocol.KindGet:
		params, err := decodeBody[protocol.GetParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Get: params}, nil

	case protocol.KindSetWindowSize:
		params, err := decodeBody[protocol.WindowSizeParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, SetWindowSize: params}, nil

	case protocol.KindSetWindowPosition:
		params, err := decodeBody[protocol.WindowPositionParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, SetWindowPosition: params}, nil

	case protocol.KindSwitchToWindow:
		params, err := decodeBody[protocol.SwitchToWindowParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, SwitchToWindow: params}, nil

	case protocol.KindSwitchToFrame:
		params, err := decodeBody[protocol.SwitchToFrameParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, SwitchToFrame: params}, nil

	case protocol.KindFindElement, protocol.KindFindElements:
		params, err := decodeBody[protocol.LocatorParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Locator: params}, nil

	case protocol.KindFindElementElement, protocol.KindFindElementElements:
		elem, err := requireElement(captures)
		if err != nil {
			return protocol.Command{}, err
		}
		params, err := decodeBody[protocol.LocatorParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Element: elem, Locator: params}, nil

	case protocol.KindIsDisplayed,
		protocol.KindIsSelected,
		protocol.KindGetElementText,
		protocol.KindGetElementTagName,
		protocol.KindGetElementRect,
		protocol.KindIsEnabled,
		protocol.KindElementClick,
		protocol.KindElementTap,
		protocol.KindElementClear,
		protocol.KindTakeElementScreenshot:
		elem, err := requireElement(captures)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Element: elem}, nil

	case protocol.KindGetElementAttribute, protocol.KindGetElementProperty:
		elem, err := requireElement(captures)
		if err != nil {
			return protocol.Command{}, err
		}
		name, err := requireCapture(captures, "name")
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Element: elem, Name: name}, nil

	case protocol.KindGetCSSValue:
		elem, err := requireElement(captures)
		if err != nil {
			return protocol.Command{}, err
		}
		name, err := requireCapture(captures, "propertyName")
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Element: elem, Name: name}, nil

	case protocol.KindElementSendKeys:
		elem, err := requireElement(captures)
		if err != nil {
			return protocol.Command{}, err
		}
		params, err := decodeBody[protocol.SendKeysParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Element: elem, SendKeys: params}, nil

	case protocol.KindExecuteScript, protocol.KindExecuteAsyncScript:
		params, err := decodeBody[protocol.JavascriptCommandParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Script: params}, nil

	case protocol.KindGetCookie, protocol.KindDeleteCookie:
		name, err := requireCapture(captures, "name")
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Name: name}, nil

	case protocol.KindAddCookie:
		params, err := decodeBody[protocol.AddCookieParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, AddCookie: params}, nil

	case protocol.KindSetTimeouts:
		params, err := decodeBody[protocol.TimeoutsParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Timeouts: params}, nil

	case protocol.KindPerformActions:
		params, err := decodeBody[protocol.ActionsParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, Actions: params}, nil

	case protocol.KindSendAlertText:
		params, err := decodeBody[protocol.SendKeysParameters](body)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Kind: kind, SendKeys: params}, nil

	case protocol.KindExtension:
		if ext == nil {
			return protocol.Command{}, protocol.New(protocol.UnknownCommand, "no extension registered for matched route")
		}
		return ext.Command(captures, body)

	default:
		return protocol.Command{}, protocol.Newf(protocol.UnknownCommand, "no decoder for command kind %q", kind)
	}
}

func requireElement(captures endpoint.Captures) (protocol.WebElement, error) {
	id, err := requireCapture(captures, "elementId")
	if err != nil {
		return protocol.WebElement{}, err
	}
	return protocol.WebElement{ID: id}, nil
}

func requireCapture(captures endpoint.Captures, name string) (string, error) {
	v, ok := captures[name]
	if !ok {
		return "", protocol.Newf(protocol.InvalidArgument, "missing %s parameter", name)
	}
	return v, nil
}

// decodeBody unmarshals body into a fresh *T, treating an empty body as
// "{}" so body-carrying endpoints with no required fields still decode.
func decodeBody[T any](body []byte) (*T, error) {
	if len(body) == 0 {
		body = []byte("{}")
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, protocol.Newf(protocol.InvalidArgument, "invalid request body: %v", err)
	}
	return &v, nil
}
