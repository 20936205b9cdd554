package protocol

// Kind identifies a Command variant. Every W3C WebDriver endpoint maps to
// exactly one Kind; see the endpoint package's route table for the
// (method, path) each one answers to.
type Kind string

// The ~60 standard command variants, one per WebDriver endpoint, plus
// KindExtension for user-registered extension commands.
const (
	KindNewSession             Kind = "NewSession"
	KindDeleteSession          Kind = "DeleteSession"
	KindGet                    Kind = "Get"
	KindGetCurrentURL          Kind = "GetCurrentUrl"
	KindGoBack                 Kind = "GoBack"
	KindGoForward              Kind = "GoForward"
	KindRefresh                Kind = "Refresh"
	KindGetTitle               Kind = "GetTitle"
	KindGetPageSource          Kind = "GetPageSource"
	KindGetWindowHandle        Kind = "GetWindowHandle"
	KindGetWindowHandles       Kind = "GetWindowHandles"
	KindCloseWindow            Kind = "CloseWindow"
	KindGetWindowSize          Kind = "GetWindowSize"
	KindSetWindowSize          Kind = "SetWindowSize"
	KindGetWindowPosition      Kind = "GetWindowPosition"
	KindSetWindowPosition      Kind = "SetWindowPosition"
	KindMaximizeWindow         Kind = "MaximizeWindow"
	KindFullscreenWindow       Kind = "FullscreenWindow"
	KindSwitchToWindow         Kind = "SwitchToWindow"
	KindSwitchToFrame          Kind = "SwitchToFrame"
	KindSwitchToParentFrame    Kind = "SwitchToParentFrame"
	KindFindElement            Kind = "FindElement"
	KindFindElements           Kind = "FindElements"
	KindFindElementElement     Kind = "FindElementElement"
	KindFindElementElements    Kind = "FindElementElements"
	KindGetActiveElement       Kind = "GetActiveElement"
	KindIsDisplayed            Kind = "IsDisplayed"
	KindIsSelected             Kind = "IsSelected"
	KindGetElementAttribute    Kind = "GetElementAttribute"
	KindGetElementProperty     Kind = "GetElementProperty"
	KindGetCSSValue            Kind = "GetCSSValue"
	KindGetElementText         Kind = "GetElementText"
	KindGetElementTagName      Kind = "GetElementTagName"
	KindGetElementRect         Kind = "GetElementRect"
	KindIsEnabled              Kind = "IsEnabled"
	KindExecuteScript          Kind = "ExecuteScript"
	KindExecuteAsyncScript     Kind = "ExecuteAsyncScript"
	KindGetCookies             Kind = "GetCookies"
	KindGetCookie              Kind = "GetCookie"
	KindAddCookie              Kind = "AddCookie"
	KindDeleteCookies          Kind = "DeleteCookies"
	KindDeleteCookie           Kind = "DeleteCookie"
	KindGetTimeouts            Kind = "GetTimeouts"
	KindSetTimeouts            Kind = "SetTimeouts"
	KindElementClick           Kind = "ElementClick"
	KindElementTap             Kind = "ElementTap"
	KindElementClear           Kind = "ElementClear"
	KindElementSendKeys        Kind = "ElementSendKeys"
	KindPerformActions         Kind = "PerformActions"
	KindReleaseActions         Kind = "ReleaseActions"
	KindDismissAlert           Kind = "DismissAlert"
	KindAcceptAlert            Kind = "AcceptAlert"
	KindGetAlertText           Kind = "GetAlertText"
	KindSendAlertText          Kind = "SendAlertText"
	KindTakeScreenshot         Kind = "TakeScreenshot"
	KindTakeElementScreenshot  Kind = "TakeElementScreenshot"
	KindStatus                 Kind = "Status"
	KindExtension              Kind = "Extension"
)

// Command is a decoded WebDriver command ready for dispatch. Go has no
// native sum type, so the ~60 variants of the original Command enum are
// represented here as a closed Kind discriminant plus the union of
// payload fields each variant might populate; exactly the fields implied
// by Kind are meaningful (see each Kind constant's endpoint in the
// endpoint package for which).
type Command struct {
	Kind Kind

	// Element is populated for variants carrying a single element
	// reference (IsDisplayed, ElementClick, FindElementElement, ...).
	Element WebElement

	// Name carries the {name} path placeholder (GetElementAttribute,
	// GetElementProperty's property name, GetCookie, DeleteCookie) or the
	// {propertyName} placeholder (GetCSSValue).
	Name string

	NewSession         *NewSessionParameters
	Get                *GetParameters
	SetWindowSize      *WindowSizeParameters
	SetWindowPosition  *WindowPositionParameters
	SwitchToWindow     *SwitchToWindowParameters
	SwitchToFrame      *SwitchToFrameParameters
	Locator            *LocatorParameters
	Script             *JavascriptCommandParameters
	AddCookie          *AddCookieParameters
	Timeouts           *TimeoutsParameters
	SendKeys           *SendKeysParameters
	Actions            *ActionsParameters

	// Extension carries the decoded extension command when Kind ==
	// KindExtension. Populated by an endpoint.Extension's Command method.
	Extension any
}

// ExtensionCommand is the capability a user-supplied extension command
// type must satisfy. ParametersJSON lets clients (not this library)
// reproduce the original request body; it is never called by the core.
type ExtensionCommand interface {
	ParametersJSON() (any, bool)
}

// VoidExtensionCommand is the default extension command used when no
// extension is registered; it is never constructed.
type VoidExtensionCommand struct{}

// ParametersJSON panics: no extension is implemented for VoidExtensionCommand.
func (VoidExtensionCommand) ParametersJSON() (any, bool) {
	panic("protocol: no extension commands implemented")
}
