package scrappey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayloadBasics(t *testing.T) {
	cfg := ScrapeConfig{URL: "https://example.com"}
	p := cfg.payload("")

	require.Equal(t, "request.get", p["cmd"])
	require.Equal(t, "https://example.com", p["url"])
	require.Equal(t, true, p["premiumProxy"])
	require.Equal(t, true, p["automaticallySolveCaptchas"])
	require.NotContains(t, p, "session")
	require.NotContains(t, p, "customHeaders")
	require.NotContains(t, p, "postData")
	require.NotContains(t, p, "browserActions")
}

func TestPayloadMethodLowered(t *testing.T) {
	p := ScrapeConfig{URL: "https://example.com", Method: "POST"}.payload("")
	require.Equal(t, "request.post", p["cmd"])

	p = ScrapeConfig{URL: "https://example.com", Method: "Delete"}.payload("")
	require.Equal(t, "request.delete", p["cmd"])
}

func TestPayloadSessionPrecedence(t *testing.T) {
	cfg := ScrapeConfig{URL: "https://example.com", Session: "from-config"}

	require.Equal(t, "from-config", cfg.payload("")["session"])
	require.Equal(t, "override", cfg.payload("override")["session"])
}

func TestPayloadCountryMapping(t *testing.T) {
	p := ScrapeConfig{URL: "https://example.com", Country: "US"}.payload("")
	require.Equal(t, "UnitedStates", p["proxyCountry"])

	p = ScrapeConfig{URL: "https://example.com", Country: "UK"}.payload("")
	require.Equal(t, "UnitedKingdom", p["proxyCountry"])

	// unknown codes pass through untouched
	p = ScrapeConfig{URL: "https://example.com", Country: "ZZ"}.payload("")
	require.Equal(t, "ZZ", p["proxyCountry"])
}

func TestPayloadHeadersAndCookies(t *testing.T) {
	cfg := ScrapeConfig{
		URL:     "https://example.com",
		Headers: map[string]string{"X-Custom": "1"},
		Cookies: map[string]string{"b": "2", "a": "1", "c": "3"},
	}
	headers, ok := cfg.payload("")["customHeaders"].(map[string]string)
	require.True(t, ok)
	require.Equal(t, "1", headers["X-Custom"])
	require.Equal(t, "a=1; b=2; c=3", headers["Cookie"])
}

func TestPayloadPostDataPrecedence(t *testing.T) {
	p := ScrapeConfig{
		URL:    "https://example.com",
		Method: "POST",
		Body:   "raw-body",
	}.payload("")
	require.Equal(t, "raw-body", p["postData"])

	p = ScrapeConfig{
		URL:    "https://example.com",
		Method: "POST",
		Body:   "raw-body",
		Data:   map[string]any{"k": "v"},
	}.payload("")
	require.Equal(t, map[string]any{"k": "v"}, p["postData"])
}

func TestPayloadCaptchaToggle(t *testing.T) {
	off := false
	p := ScrapeConfig{URL: "https://example.com", AutoSolveCaptcha: &off}.payload("")
	require.NotContains(t, p, "automaticallySolveCaptchas")

	on := true
	p = ScrapeConfig{URL: "https://example.com", AutoSolveCaptcha: &on}.payload("")
	require.Equal(t, true, p["automaticallySolveCaptchas"])
}

func TestPayloadExtraOverridesEverything(t *testing.T) {
	p := ScrapeConfig{
		URL:   "https://example.com",
		Extra: map[string]any{"premiumProxy": false, "datacenter": true},
	}.payload("")
	require.Equal(t, false, p["premiumProxy"])
	require.Equal(t, true, p["datacenter"])
}

func TestBrowserActionOrdering(t *testing.T) {
	cfg := ScrapeConfig{
		URL:             "https://example.com",
		WaitForSelector: "#app",
		JSScenario: []ScenarioAction{
			{Click: &ClickStep{Selector: "#more", IgnoreIfNotVisible: true}},
			{Wait: 1.5},
		},
		JS:            "window.scrollTo(0, 0)",
		AutoScroll:    true,
		RenderingWait: 2000,
	}

	actions := cfg.browserActions()
	require.Len(t, actions, 6)

	require.Equal(t, BrowserAction{
		Type:        "wait_for_selector",
		CSSSelector: "#app",
		Timeout:     defaultSelectorTimeoutMs,
	}, actions[0])
	require.Equal(t, BrowserAction{
		Type:         "click",
		CSSSelector:  "#more",
		IgnoreErrors: true,
	}, actions[1])
	require.Equal(t, BrowserAction{Type: "wait", Wait: 1.5}, actions[2])
	require.Equal(t, BrowserAction{Type: "execute_js", Code: "window.scrollTo(0, 0)"}, actions[3])
	require.Equal(t, BrowserAction{Type: "scroll"}, actions[4])
	// 2000 reads as milliseconds
	require.Equal(t, BrowserAction{Type: "wait", Wait: 2.0}, actions[5])
}

func TestRenderingWaitSmallValuesAreSeconds(t *testing.T) {
	actions := ScrapeConfig{URL: "https://example.com", RenderingWait: 5}.browserActions()
	require.Len(t, actions, 1)
	require.Equal(t, BrowserAction{Type: "wait", Wait: 5.0}, actions[0])
}

func TestScenarioCompile(t *testing.T) {
	cases := []struct {
		name string
		step ScenarioAction
		want BrowserAction
	}{
		{
			"WaitForSelectorDefaultTimeout",
			ScenarioAction{WaitForSelector: &WaitForSelectorStep{Selector: ".done"}},
			BrowserAction{Type: "wait_for_selector", CSSSelector: ".done", Timeout: defaultSelectorTimeoutMs},
		},
		{
			"WaitForSelectorCustomTimeout",
			ScenarioAction{WaitForSelector: &WaitForSelectorStep{Selector: ".done", TimeoutMs: 5000}},
			BrowserAction{Type: "wait_for_selector", CSSSelector: ".done", Timeout: 5000},
		},
		{
			"Scroll",
			ScenarioAction{Scroll: &ScrollStep{Selector: "#feed"}},
			BrowserAction{Type: "scroll", CSSSelector: "#feed"},
		},
		{
			"ExecuteJS",
			ScenarioAction{ExecuteJS: "document.title"},
			BrowserAction{Type: "execute_js", Code: "document.title"},
		},
		{
			"Type",
			ScenarioAction{Type: &TypeStep{Selector: "input[name=q]", Text: "golang"}},
			BrowserAction{Type: "type", CSSSelector: "input[name=q]", Text: "golang"},
		},
		{
			"Empty",
			ScenarioAction{},
			BrowserAction{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.step.compile())
		})
	}
}

func TestEmptyScenarioStepsSkipped(t *testing.T) {
	cfg := ScrapeConfig{
		URL: "https://example.com",
		JSScenario: []ScenarioAction{
			{},
			{Wait: 1},
			{},
		},
	}
	actions := cfg.browserActions()
	require.Len(t, actions, 1)
	require.Equal(t, "wait", actions[0].Type)
}
