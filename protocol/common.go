// Package protocol defines the typed WebDriver wire protocol: commands,
// parameter records, responses, and errors, with the JSON encodings
// mandated by the W3C WebDriver specification.
//
// Several records are discriminated unions the W3C spec encodes with a
// "type" tag field (ActionSequence, the action items inside it, FrameId).
// encoding/json's struct tags cannot express that shape, so those types
// carry hand-written MarshalJSON/UnmarshalJSON methods rather than plain
// struct tags — the same approach the original Rust implementation reaches
// for (see its incomplete, hand-rolled Serialize impls in parameters.rs).
package protocol

import "encoding/json"

// elementKey is the one-key object field name the W3C spec mandates for a
// WebElement reference. Never change this string; clients round-trip on it.
const elementKey = "element-6066-11e4-a52e-4f735466cecf"

// WebElement is an opaque reference to a DOM element, held by the backend
// and handed back to commands that act on it.
type WebElement struct {
	ID string
}

// MarshalJSON encodes a WebElement as the one-key object the spec mandates:
// {"element-6066-11e4-a52e-4f735466cecf": "<id>"}.
func (e WebElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{elementKey: e.ID})
}

// UnmarshalJSON decodes a WebElement from its one-key object form.
func (e *WebElement) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, ok := raw[elementKey]
	if !ok {
		return New(InvalidArgument, "missing "+elementKey+" key in element reference")
	}
	e.ID = id
	return nil
}

// Date is a Unix-seconds timestamp, encoded as a bare JSON integer.
type Date uint64

// LocatorStrategy is the DOM element lookup strategy used by FindElement
// and FindElements.
type LocatorStrategy string

// The four strategies the W3C spec defines, with their exact wire strings.
const (
	CSSSelector      LocatorStrategy = "css selector"
	LinkText         LocatorStrategy = "link text"
	PartialLinkText  LocatorStrategy = "partial link text"
	XPath            LocatorStrategy = "xpath"
)

// FrameId selects a frame to switch into: a numeric index, an element
// reference, or null (the top-level browsing context). Its JSON form is
// an integer, a WebElement object, or JSON null — never a tagged object —
// so it needs a hand-written codec.
type FrameId struct {
	// Kind says which alternative is populated.
	Kind FrameIdKind
	// Short is valid when Kind == FrameIdShort.
	Short uint16
	// Element is valid when Kind == FrameIdElement.
	Element WebElement
}

// FrameIdKind discriminates the FrameId union.
type FrameIdKind int

const (
	FrameIdNull FrameIdKind = iota
	FrameIdShort
	FrameIdElement
)

// MarshalJSON encodes FrameId per its Kind: a bare integer, a WebElement
// object, or null.
func (f FrameId) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FrameIdShort:
		return json.Marshal(f.Short)
	case FrameIdElement:
		return json.Marshal(f.Element)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes FrameId from whichever of its three shapes is
// present: null, a JSON number, or a one-key element object.
func (f *FrameId) UnmarshalJSON(data []byte) error {
	trimmed := trimJSONSpace(data)
	if string(trimmed) == "null" {
		*f = FrameId{Kind: FrameIdNull}
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var elem WebElement
		if err := json.Unmarshal(data, &elem); err != nil {
			return New(InvalidArgument, "invalid frame id object: "+err.Error())
		}
		*f = FrameId{Kind: FrameIdElement, Element: elem}
		return nil
	}

	var short uint16
	if err := json.Unmarshal(data, &short); err != nil {
		return New(InvalidArgument, "invalid frame id: "+err.Error())
	}
	*f = FrameId{Kind: FrameIdShort, Short: short}
	return nil
}

func trimJSONSpace(data []byte) []byte {
	start := 0
	for start < len(data) && isJSONSpace(data[start]) {
		start++
	}
	end := len(data)
	for end > start && isJSONSpace(data[end-1]) {
		end--
	}
	return data[start:end]
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
