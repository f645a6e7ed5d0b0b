package wikitext

// Option configures a Renderer.
type Option func(*rendererConfig)

// rendererConfig holds the values collected from options.
type rendererConfig struct {
	settings  Settings
	lookup    PageLookup
	logger    Logger
	whitelist *Whitelist
	handlers  []namedHandler
}

type namedHandler struct {
	name    string
	handler TokenHandler
}

// WithSettings replaces the default settings. Empty URL fields and a zero
// TOC depth keep their defaults; the zero value sanitizes against the
// built-in whitelist.
func WithSettings(s Settings) Option {
	return func(c *rendererConfig) {
		c.settings = s
	}
}

// WithPageLookup sets the collaborator that resolves page titles. Without
// one, links to page titles are left as written.
func WithPageLookup(l PageLookup) Option {
	return func(c *rendererConfig) {
		c.lookup = l
	}
}

// WithLogger sets the warning sink. The default logs through klog.
func WithLogger(l Logger) Option {
	return func(c *rendererConfig) {
		c.logger = l
	}
}

// WithWhitelist sanitizes against w instead of loading
// Settings.HTMLWhitelistPath. It has no effect when
// Settings.DisableHTMLWhitelist is true.
func WithWhitelist(w *Whitelist) Option {
	return func(c *rendererConfig) {
		c.whitelist = w
	}
}

// WithTokenHandler registers h for tokens of type name, replacing any
// built-in handler of that type.
// Panics if name is empty or h is nil (programmer error).
func WithTokenHandler(name string, h TokenHandler) Option {
	if name == "" || h == nil {
		panic("wikitext: WithTokenHandler requires a name and a handler")
	}
	return func(c *rendererConfig) {
		c.handlers = append(c.handlers, namedHandler{name: name, handler: h})
	}
}
