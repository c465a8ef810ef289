package scrappey

// BrowserAction is one entry of the vendor's "browserActions" array, the
// instruction list its headless browser executes in order.
type BrowserAction struct {
	Type         string  `json:"type"`
	CSSSelector  string  `json:"cssSelector,omitempty"`
	Timeout      int     `json:"timeout,omitempty"`
	IgnoreErrors bool    `json:"ignoreErrors,omitempty"`
	Code         string  `json:"code,omitempty"`
	Wait         float64 `json:"wait,omitempty"`
	Text         string  `json:"text,omitempty"`
}

// defaultSelectorTimeoutMs bounds how long the remote browser waits for a
// selector before the action fails.
const defaultSelectorTimeoutMs = 30000

// ScenarioAction is one step of a scripted browser scenario, expressed in
// the ScrapFly vocabulary. Exactly one field should be set per step; when
// several are set the first in the order below wins.
type ScenarioAction struct {
	WaitForSelector *WaitForSelectorStep
	Click           *ClickStep
	// Wait pauses the browser for the given number of seconds.
	Wait      float64
	Scroll    *ScrollStep
	ExecuteJS string
	Type      *TypeStep
}

type WaitForSelectorStep struct {
	Selector string
	// TimeoutMs defaults to 30s when zero.
	TimeoutMs int
}

type ClickStep struct {
	Selector string
	// IgnoreIfNotVisible makes the remote browser tolerate a missing
	// element instead of failing the whole request.
	IgnoreIfNotVisible bool
}

type ScrollStep struct {
	// Selector optionally scrolls a specific element instead of the page.
	Selector string
}

type TypeStep struct {
	Selector string
	Text     string
}

// compile translates one scenario step into the vendor's action format.
func (a ScenarioAction) compile() BrowserAction {
	switch {
	case a.WaitForSelector != nil:
		timeout := a.WaitForSelector.TimeoutMs
		if timeout == 0 {
			timeout = defaultSelectorTimeoutMs
		}
		return BrowserAction{
			Type:        "wait_for_selector",
			CSSSelector: a.WaitForSelector.Selector,
			Timeout:     timeout,
		}
	case a.Click != nil:
		return BrowserAction{
			Type:         "click",
			CSSSelector:  a.Click.Selector,
			IgnoreErrors: a.Click.IgnoreIfNotVisible,
		}
	case a.Wait > 0:
		return BrowserAction{Type: "wait", Wait: a.Wait}
	case a.Scroll != nil:
		return BrowserAction{Type: "scroll", CSSSelector: a.Scroll.Selector}
	case a.ExecuteJS != "":
		return BrowserAction{Type: "execute_js", Code: a.ExecuteJS}
	case a.Type != nil:
		return BrowserAction{
			Type:        "type",
			CSSSelector: a.Type.Selector,
			Text:        a.Type.Text,
		}
	}
	return BrowserAction{}
}
