package endpoint

import "rivaas.dev/webdriver/protocol"

// Captures holds the named path placeholders extracted by a route match,
// e.g. {"sessionId": "s1", "elementId": "e1"}.
type Captures map[string]string

// Extension is the capability a user-supplied route marker must satisfy
// to be matched after the standard table. Command decodes a matched
// request into a protocol.Command carrying Kind == protocol.KindExtension
// and Extension set to the decoded extension command.
type Extension interface {
	Command(captures Captures, body []byte) (protocol.Command, error)
}

// VoidExtension is the default extension used when the caller registers
// none; it disables the extension capability.
type VoidExtension struct{}

// Command panics: VoidExtension is never matched because no routes are
// registered for it.
func (VoidExtension) Command(Captures, []byte) (protocol.Command, error) {
	panic("endpoint: no extensions implemented")
}

// ExtensionRoute is one (method, path template, extension) registration,
// matched after every standard route.
type ExtensionRoute struct {
	Method    Method
	Path      string
	Extension Extension
}
