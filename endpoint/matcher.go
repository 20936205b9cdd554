package endpoint

import (
	"regexp"
	"strings"

	"rivaas.dev/webdriver/protocol"
	"rivaas.dev/webdriver/internal/wlog"
)

// compiledRoute is a Route (or ExtensionRoute) with its path template
// already turned into an anchored regular expression.
type compiledRoute struct {
	method    Method
	pattern   *regexp.Regexp
	kind      protocol.Kind
	extension Extension // non-nil only for extension routes
}

// Table is the compiled, ordered endpoint table: standard routes first,
// then caller-registered extension routes, matched in that order so
// extensions can never shadow a standard route.
type Table struct {
	routes []compiledRoute
	logger *wlog.Logger
}

// Option configures a Table at construction time.
type Option func(*tableConfig)

type tableConfig struct {
	extensionRoutes []ExtensionRoute
	logger          *wlog.Logger
}

// WithExtensionRoute registers one extension route, appended after the
// standard table in registration order.
func WithExtensionRoute(method Method, path string, ext Extension) Option {
	return func(c *tableConfig) {
		c.extensionRoutes = append(c.extensionRoutes, ExtensionRoute{Method: method, Path: path, Extension: ext})
	}
}

// WithLogger attaches a logger used for route-compilation and match-miss
// diagnostics.
func WithLogger(l *wlog.Logger) Option {
	return func(c *tableConfig) { c.logger = l }
}

// New compiles the standard route table plus any registered extension
// routes. An invalid path template (e.g. an unclosed "{") is a programming
// error and returns an error rather than panicking, so callers building
// the table from dynamic configuration can handle it; MustNew panics for
// the common case of a static, trusted table.
func New(opts ...Option) (*Table, error) {
	cfg := &tableConfig{logger: wlog.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &Table{logger: cfg.logger}
	for _, r := range Standard {
		if err := t.add(r.Method, r.Path, r.Kind, nil); err != nil {
			return nil, err
		}
	}
	for _, r := range cfg.extensionRoutes {
		if err := t.add(r.Method, r.Path, protocol.KindExtension, r.Extension); err != nil {
			return nil, err
		}
	}
	cfg.logger.Debug("compiled route table", "routes", len(t.routes))
	return t, nil
}

// MustNew is New, panicking on an invalid path template.
func MustNew(opts ...Option) *Table {
	t, err := New(opts...)
	if err != nil {
		panic("endpoint: " + err.Error())
	}
	return t
}

func (t *Table) add(method Method, path string, kind protocol.Kind, ext Extension) error {
	pattern, err := compilePath(path)
	if err != nil {
		return err
	}
	t.routes = append(t.routes, compiledRoute{method: method, pattern: pattern, kind: kind, extension: ext})
	return nil
}

// compilePath turns a "/a/{name}/b" template into the anchored regular
// expression "^/a/(?P<name>[^/]+)/b$", per spec.md §4.3. Each segment is
// either literal or a single {identifier} placeholder; a trailing slash
// is elided. Literal segments are regexp-escaped (the original Rust
// implementation this is grounded on does not escape them, but every
// standard template is alphanumeric so this only matters for
// caller-supplied extension templates).
func compilePath(path string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if i > 0 {
			b.WriteString("/")
		}
		if strings.HasPrefix(seg, "{") {
			if !strings.HasSuffix(seg, "}") {
				return nil, protocol.Newf(protocol.UnknownError, "invalid path template %q: unclosed placeholder", path)
			}
			name := seg[1 : len(seg)-1]
			if name == "" {
				return nil, protocol.Newf(protocol.UnknownError, "invalid path template %q: empty placeholder name", path)
			}
			b.WriteString("(?P<")
			b.WriteString(name)
			b.WriteString(">[^/]+)")
		} else {
			b.WriteString(regexp.QuoteMeta(seg))
		}
	}

	// Trailing "/" in the template produces a trailing empty segment;
	// elide it the way spec.md §4.3 describes.
	pattern := strings.TrimSuffix(b.String(), "/")
	pattern += "$"
	return regexp.Compile(pattern)
}

// Match resolves (method, path) to a command kind, its path captures, and
// (for extension routes) the matched Extension. The first route whose
// path matches and whose method equals the request method wins; if any
// route's path matches but none of their methods do, the result is
// UnknownMethod, otherwise UnknownPath.
func (t *Table) Match(method Method, path string) (protocol.Kind, Captures, Extension, error) {
	sawPathMatch := false

	for _, r := range t.routes {
		names := r.pattern.SubexpNames()
		match := r.pattern.FindStringSubmatch(path)
		if match == nil {
			continue
		}
		sawPathMatch = true
		if r.method != method {
			continue
		}

		captures := make(Captures, len(names))
		for i, name := range names {
			if i == 0 || name == "" {
				continue
			}
			captures[name] = match[i]
		}
		t.logger.Debug("route matched", "method", method, "path", path, "kind", r.kind)
		return r.kind, captures, r.extension, nil
	}

	if sawPathMatch {
		t.logger.Debug("route path matched but method did not", "method", method, "path", path)
		return "", nil, nil, protocol.Newf(protocol.UnknownMethod, "%s %s did not match a known command", method, path)
	}
	t.logger.Debug("no route matched", "method", method, "path", path)
	return "", nil, nil, protocol.Newf(protocol.UnknownPath, "%s %s did not match a known command", method, path)
}
