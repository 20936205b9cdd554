// Package endpoint compiles the WebDriver endpoint table — the static
// (HTTP method, path template) → command-kind mapping from spec.md §4.3 —
// into a matcher that resolves an incoming request to a protocol.Kind plus
// its path captures.
//
// Grounded on the original juangj/webdriver-rust
// protocol/endpoints.rs::standard_endpoints() and server/httpapi.rs's
// RequestMatcher/HttpApi; the route list below reproduces that table
// verbatim, including the legacy JSON-Wire-Protocol compatibility block,
// plus one supplemented FullscreenWindow route (see the note on it below).
package endpoint

import "rivaas.dev/webdriver/protocol"

// Method is an HTTP method as used by the route table.
type Method string

const (
	Get    Method = "GET"
	Post   Method = "POST"
	Delete Method = "DELETE"
)

// Route is one (method, path template, command kind) entry.
type Route struct {
	Method Method
	Path   string
	Kind   protocol.Kind
}

// Standard is the full W3C route table plus the legacy compatibility
// block, in priority order: modern paths before their legacy
// counterparts, so modern paths win ties within the table itself (the
// matcher additionally prefers standard routes over extension routes,
// see Table).
var Standard = []Route{
	{Post, "/session", protocol.KindNewSession},
	{Delete, "/session/{sessionId}", protocol.KindDeleteSession},
	{Post, "/session/{sessionId}/url", protocol.KindGet},
	{Get, "/session/{sessionId}/url", protocol.KindGetCurrentURL},
	{Post, "/session/{sessionId}/back", protocol.KindGoBack},
	{Post, "/session/{sessionId}/forward", protocol.KindGoForward},
	{Post, "/session/{sessionId}/refresh", protocol.KindRefresh},
	{Get, "/session/{sessionId}/title", protocol.KindGetTitle},
	{Get, "/session/{sessionId}/source", protocol.KindGetPageSource},
	{Get, "/session/{sessionId}/window", protocol.KindGetWindowHandle},
	{Get, "/session/{sessionId}/window/handles", protocol.KindGetWindowHandles},
	{Delete, "/session/{sessionId}/window", protocol.KindCloseWindow},
	{Get, "/session/{sessionId}/window/size", protocol.KindGetWindowSize},
	{Post, "/session/{sessionId}/window/size", protocol.KindSetWindowSize},
	{Get, "/session/{sessionId}/window/position", protocol.KindGetWindowPosition},
	{Post, "/session/{sessionId}/window/position", protocol.KindSetWindowPosition},
	{Post, "/session/{sessionId}/window/maximize", protocol.KindMaximizeWindow},
	// Supplemented beyond the original's table: the original's Command
	// enum has a FullscreenWindow variant with no route registered for
	// it anywhere in endpoints.rs. The W3C spec defines this endpoint;
	// wire it up rather than leave the variant unreachable.
	{Post, "/session/{sessionId}/window/fullscreen", protocol.KindFullscreenWindow},
	{Post, "/session/{sessionId}/window", protocol.KindSwitchToWindow},
	{Post, "/session/{sessionId}/frame", protocol.KindSwitchToFrame},
	{Post, "/session/{sessionId}/frame/parent", protocol.KindSwitchToParentFrame},
	{Post, "/session/{sessionId}/element", protocol.KindFindElement},
	{Post, "/session/{sessionId}/elements", protocol.KindFindElements},
	{Post, "/session/{sessionId}/element/{elementId}/element", protocol.KindFindElementElement},
	{Post, "/session/{sessionId}/element/{elementId}/elements", protocol.KindFindElementElements},
	{Get, "/session/{sessionId}/element/active", protocol.KindGetActiveElement},
	{Get, "/session/{sessionId}/element/{elementId}/displayed", protocol.KindIsDisplayed},
	{Get, "/session/{sessionId}/element/{elementId}/selected", protocol.KindIsSelected},
	{Get, "/session/{sessionId}/element/{elementId}/attribute/{name}", protocol.KindGetElementAttribute},
	{Get, "/session/{sessionId}/element/{elementId}/property/{name}", protocol.KindGetElementProperty},
	{Get, "/session/{sessionId}/element/{elementId}/css/{propertyName}", protocol.KindGetCSSValue},
	{Get, "/session/{sessionId}/element/{elementId}/text", protocol.KindGetElementText},
	{Get, "/session/{sessionId}/element/{elementId}/name", protocol.KindGetElementTagName},
	{Get, "/session/{sessionId}/element/{elementId}/rect", protocol.KindGetElementRect},
	{Get, "/session/{sessionId}/element/{elementId}/enabled", protocol.KindIsEnabled},
	{Post, "/session/{sessionId}/execute/sync", protocol.KindExecuteScript},
	{Post, "/session/{sessionId}/execute/async", protocol.KindExecuteAsyncScript},
	{Get, "/session/{sessionId}/cookie", protocol.KindGetCookies},
	{Get, "/session/{sessionId}/cookie/{name}", protocol.KindGetCookie},
	{Post, "/session/{sessionId}/cookie", protocol.KindAddCookie},
	{Delete, "/session/{sessionId}/cookie", protocol.KindDeleteCookies},
	{Delete, "/session/{sessionId}/cookie/{name}", protocol.KindDeleteCookie},
	{Get, "/session/{sessionId}/timeouts", protocol.KindGetTimeouts},
	{Post, "/session/{sessionId}/timeouts", protocol.KindSetTimeouts},
	{Post, "/session/{sessionId}/element/{elementId}/click", protocol.KindElementClick},
	{Post, "/session/{sessionId}/element/{elementId}/tap", protocol.KindElementTap},
	{Post, "/session/{sessionId}/element/{elementId}/clear", protocol.KindElementClear},
	{Post, "/session/{sessionId}/element/{elementId}/value", protocol.KindElementSendKeys},
	{Post, "/session/{sessionId}/alert/dismiss", protocol.KindDismissAlert},
	{Post, "/session/{sessionId}/alert/accept", protocol.KindAcceptAlert},
	{Get, "/session/{sessionId}/alert/text", protocol.KindGetAlertText},
	{Post, "/session/{sessionId}/alert/text", protocol.KindSendAlertText},
	{Get, "/session/{sessionId}/screenshot", protocol.KindTakeScreenshot},
	{Get, "/session/{sessionId}/element/{elementId}/screenshot", protocol.KindTakeElementScreenshot},
	{Post, "/session/{sessionId}/actions", protocol.KindPerformActions},
	{Delete, "/session/{sessionId}/actions", protocol.KindReleaseActions},

	// Legacy JSON Wire Protocol compatibility block. Kept for
	// interoperability with pre-W3C clients; placed after every modern
	// path so modern paths win ties (see Table.Match).
	{Get, "/session/{sessionId}/alert_text", protocol.KindGetAlertText},
	{Post, "/session/{sessionId}/alert_text", protocol.KindSendAlertText},
	{Post, "/session/{sessionId}/accept_alert", protocol.KindAcceptAlert},
	{Post, "/session/{sessionId}/dismiss_alert", protocol.KindDismissAlert},
	{Get, "/session/{sessionId}/window_handle", protocol.KindGetWindowHandle},
	{Get, "/session/{sessionId}/window_handles", protocol.KindGetWindowHandles},
	{Delete, "/session/{sessionId}/window_handle", protocol.KindCloseWindow},
	{Post, "/session/{sessionId}/execute_async", protocol.KindExecuteAsyncScript},
	{Post, "/session/{sessionId}/execute", protocol.KindExecuteScript},

	{Get, "/status", protocol.KindStatus},
}
