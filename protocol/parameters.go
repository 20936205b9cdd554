package protocol

import "encoding/json"

// NewSessionParameters is the body of POST /session.
//
// The original JSON Wire Protocol shape — two maps, Required taking
// precedence over Desired — is preserved deliberately rather than
// rewritten to the W3C "capabilities" wrapper; see DESIGN.md's Open
// Question resolution.
type NewSessionParameters struct {
	Desired  map[string]json.RawMessage `json:"desiredCapabilities"`
	Required map[string]json.RawMessage `json:"requiredCapabilities"`
}

// UnmarshalJSON defaults both maps to empty when their key is absent,
// rather than leaving them nil, so Get/Consume never need a nil check.
func (p *NewSessionParameters) UnmarshalJSON(data []byte) error {
	type alias NewSessionParameters
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Desired == nil {
		a.Desired = map[string]json.RawMessage{}
	}
	if a.Required == nil {
		a.Required = map[string]json.RawMessage{}
	}
	*p = NewSessionParameters(a)
	return nil
}

// Get returns a requested capability, reading from Required and falling
// back to Desired.
func (p *NewSessionParameters) Get(name string) (json.RawMessage, bool) {
	if v, ok := p.Required[name]; ok {
		return v, true
	}
	v, ok := p.Desired[name]
	return v, ok
}

// Consume removes and returns a capability with the same Required-then-
// Desired precedence as Get.
func (p *NewSessionParameters) Consume(name string) (json.RawMessage, bool) {
	if v, ok := p.Required[name]; ok {
		delete(p.Required, name)
		return v, true
	}
	if v, ok := p.Desired[name]; ok {
		delete(p.Desired, name)
		return v, true
	}
	return nil, false
}

// GetParameters is the body of POST /session/{sessionId}/url.
type GetParameters struct {
	URL string `json:"url"`
}

// TimeoutsParameters is the body of POST /session/{sessionId}/timeouts.
type TimeoutsParameters struct {
	Type string  `json:"type"`
	MS   float64 `json:"ms"`
}

// WindowSizeParameters is the body of POST /session/{sessionId}/window/size.
type WindowSizeParameters struct {
	Width  uint64 `json:"width"`
	Height uint64 `json:"height"`
}

// WindowPositionParameters is the body of
// POST /session/{sessionId}/window/position.
//
// Signed rather than the original's unsigned fields, per spec.md's explicit
// override: window positions may legitimately be negative on multi-monitor
// setups.
type WindowPositionParameters struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// SwitchToWindowParameters is the body of POST /session/{sessionId}/window.
type SwitchToWindowParameters struct {
	Handle string `json:"handle"`
}

// LocatorParameters is the body of the FindElement(s) family of endpoints.
type LocatorParameters struct {
	Using LocatorStrategy `json:"using"`
	Value string          `json:"value"`
}

// SwitchToFrameParameters is the body of POST /session/{sessionId}/frame.
type SwitchToFrameParameters struct {
	ID FrameId `json:"id"`
}

// SendKeysParameters carries a sequence of Unicode scalars, used by
// ElementSendKeys and SendAlertText. The wire form is a JSON array of
// single-character strings, not a single concatenated string.
type SendKeysParameters struct {
	Value []rune
}

// MarshalJSON encodes Value as an array of one-character strings.
func (p SendKeysParameters) MarshalJSON() ([]byte, error) {
	chars := make([]string, len(p.Value))
	for i, r := range p.Value {
		chars[i] = string(r)
	}
	return json.Marshal(struct {
		Value []string `json:"value"`
	}{Value: chars})
}

// UnmarshalJSON decodes Value from an array of one-character strings.
func (p *SendKeysParameters) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value []string `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	runes := make([]rune, 0, len(raw.Value))
	for _, s := range raw.Value {
		r := []rune(s)
		if len(r) != 1 {
			return New(InvalidArgument, "send keys value must be single Unicode scalars")
		}
		runes = append(runes, r[0])
	}
	p.Value = runes
	return nil
}

// JavascriptCommandParameters is the body of ExecuteScript/ExecuteAsyncScript.
type JavascriptCommandParameters struct {
	Script string            `json:"script"`
	Args   []json.RawMessage `json:"args"`
}

// GetNamedCookieParameters documents the named-cookie lookup shape from the
// original source. The standard endpoint table extracts the cookie name
// from the {name} path placeholder instead, so this type is unused by
// standard routes; it is exported for extension authors who want a
// body-carrying variant.
type GetNamedCookieParameters struct {
	Name *string `json:"name,omitempty"`
}

// AddCookieParameters is the body of POST /session/{sessionId}/cookie.
type AddCookieParameters struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Path     *string `json:"path,omitempty"`
	Domain   *string `json:"domain,omitempty"`
	Expiry   *Date   `json:"expiry,omitempty"`
	Secure   bool    `json:"secure"`
	HTTPOnly bool    `json:"httpOnly"`
}

// TakeScreenshotParameters documents the original's optional-element
// screenshot shape. The standard table's TakeScreenshot/
// TakeElementScreenshot are body-less (the element, when any, comes from
// the path), so this ships unused by the standard table — for extension
// authors building a combined screenshot endpoint.
type TakeScreenshotParameters struct {
	Element *WebElement `json:"element,omitempty"`
}

// ActionsParameters is the body of POST /session/{sessionId}/actions.
type ActionsParameters struct {
	Actions []ActionSequence `json:"actions"`
}
