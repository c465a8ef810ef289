package scrappey

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ScrapeConfig describes one scrape request in the ScrapFly configuration
// vocabulary. The zero value plus a URL is a valid GET request. The client
// only reads configs, it never mutates them.
type ScrapeConfig struct {
	// URL is the page to scrape.
	URL string
	// Method defaults to GET.
	Method string
	// Headers are sent to the target as customHeaders.
	Headers map[string]string
	// Cookies are folded into a Cookie header.
	Cookies map[string]string
	// Body is the raw request body for POST-like methods. Data takes
	// precedence when both are set.
	Body string
	Data map[string]any

	// Country is a 2-letter geo hint for the proxy pool.
	Country string

	// WaitForSelector blocks rendering until the selector matches. It
	// always compiles into the first browser action.
	WaitForSelector string
	// JSScenario is an ordered list of scripted browser steps.
	JSScenario []ScenarioAction
	// JS is a standalone script executed after the scenario.
	JS string
	// AutoScroll scrolls the page after scripted actions.
	AutoScroll bool
	// RenderingWait pauses after rendering. Values above 100 are taken as
	// milliseconds, smaller values as seconds.
	RenderingWait int

	// Session pins the request to a vendor browser session. A session
	// override passed at scrape time wins over this field.
	Session string
	// Timeout overrides the client-level attempt timeout.
	Timeout time.Duration
	// AutoSolveCaptcha defaults to on; set to a false pointer to disable.
	AutoSolveCaptcha *bool

	// Accepted for ScrapFly vocabulary compatibility; the vendor has no
	// equivalent, so translation ignores them.
	ASP       bool
	RenderJS  bool
	ProxyPool string
	Lang      []string
	Cache     bool
	CacheTTL  int

	// Extra merges arbitrary vendor parameters into the payload last, so
	// it can override anything translation produced.
	Extra map[string]any
}

// payload translates the config into the vendor's wire-format request
// body. Pure and deterministic; malformed input passes through untouched
// since the API performs its own validation.
func (c ScrapeConfig) payload(sessionOverride string) map[string]any {
	method := c.Method
	if method == "" {
		method = http.MethodGet
	}

	p := map[string]any{
		"cmd":          "request." + strings.ToLower(method),
		"url":          c.URL,
		"premiumProxy": true,
	}

	switch {
	case sessionOverride != "":
		p["session"] = sessionOverride
	case c.Session != "":
		p["session"] = c.Session
	}

	if c.Country != "" {
		p["proxyCountry"] = countryName(c.Country)
	}

	headers := map[string]string{}
	for k, v := range c.Headers {
		headers[k] = v
	}
	if len(c.Cookies) > 0 {
		headers["Cookie"] = cookieHeader(c.Cookies)
	}
	if len(headers) > 0 {
		p["customHeaders"] = headers
	}

	if c.Body != "" {
		p["postData"] = c.Body
	}
	if c.Data != nil {
		p["postData"] = c.Data
	}

	if actions := c.browserActions(); len(actions) > 0 {
		p["browserActions"] = actions
	}

	if c.AutoSolveCaptcha == nil || *c.AutoSolveCaptcha {
		p["automaticallySolveCaptchas"] = true
	}

	for k, v := range c.Extra {
		p[k] = v
	}

	return p
}

// browserActions builds the ordered action array. The ordering is
// load-bearing, it is what the remote browser executes: selector wait
// first, then the scenario in its given order, then standalone JS, then
// auto-scroll, then the post-render wait.
func (c ScrapeConfig) browserActions() []BrowserAction {
	var actions []BrowserAction

	if c.WaitForSelector != "" {
		a := BrowserAction{
			Type:        "wait_for_selector",
			CSSSelector: c.WaitForSelector,
			Timeout:     defaultSelectorTimeoutMs,
		}
		if ignore, _ := c.Extra["waitForSelectorIgnoreErrors"].(bool); ignore {
			a.IgnoreErrors = true
		}
		actions = append(actions, a)
	}

	for _, step := range c.JSScenario {
		compiled := step.compile()
		if compiled.Type == "" {
			continue
		}
		actions = append(actions, compiled)
	}

	if c.JS != "" {
		actions = append(actions, BrowserAction{Type: "execute_js", Code: c.JS})
	}

	if c.AutoScroll {
		actions = append(actions, BrowserAction{Type: "scroll"})
	}

	if c.RenderingWait > 0 {
		wait := float64(c.RenderingWait)
		// the vendor counts in seconds
		if c.RenderingWait > 100 {
			wait = wait / 1000
		}
		actions = append(actions, BrowserAction{Type: "wait", Wait: wait})
	}

	return actions
}

// cookieHeader folds a cookie map into a Cookie header value with a
// stable key order.
func cookieHeader(cookies map[string]string) string {
	keys := make([]string, 0, len(cookies))
	for k := range cookies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, cookies[k]))
	}
	return strings.Join(pairs, "; ")
}
