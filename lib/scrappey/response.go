package scrappey

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cookie is one browser cookie captured by the vendor after the page
// settled.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
}

// solution is the inner object of a successful vendor response.
type solution struct {
	CurrentURL       string         `json:"currentUrl"`
	URL              string         `json:"url"`
	StatusCode       int            `json:"statusCode"`
	HTML             string         `json:"html"`
	Response         string         `json:"response"`
	InnerText        string         `json:"innerText"`
	Cookies          []Cookie       `json:"cookies"`
	ResponseHeaders  map[string]any `json:"responseHeaders"`
	Headers          map[string]any `json:"headers"`
	XHRCalls         []any          `json:"xhrCalls"`
	JSResult         any            `json:"jsResult"`
	JavascriptReturn []any          `json:"javascriptReturn"`
}

type apiResponse struct {
	Solution       solution `json:"solution"`
	Status         int      `json:"status"`
	TimeElapsed    int      `json:"timeElapsed"`
	ScreenshotURL  string   `json:"screenshotUrl"`
	AdditionalCost float64  `json:"additionalCost"`
}

// ScrapeApiResponse wraps a successful vendor response in the ScrapFly
// response shape.
type ScrapeApiResponse struct {
	api         apiResponse
	raw         map[string]any
	rawBody     []byte
	originalURL string
	doc         *goquery.Document
}

func newScrapeApiResponse(body []byte, raw map[string]any, originalURL string) *ScrapeApiResponse {
	var api apiResponse
	// decode errors leave the typed view zeroed, accessors fall back
	_ = json.Unmarshal(body, &api)
	return &ScrapeApiResponse{
		api:         api,
		raw:         raw,
		rawBody:     body,
		originalURL: originalURL,
	}
}

// HTML returns the rendered page markup.
func (r *ScrapeApiResponse) HTML() string {
	if r.api.Solution.HTML != "" {
		return r.api.Solution.HTML
	}
	return r.api.Solution.Response
}

// Text returns the page's raw innerText.
func (r *ScrapeApiResponse) Text() string {
	return r.api.Solution.InnerText
}

// Content returns the innerText when it looks like a JSON document (the
// page was an API endpoint rendered in a browser) and the HTML otherwise.
func (r *ScrapeApiResponse) Content() string {
	if looksLikeJSON(r.api.Solution.InnerText) {
		return r.api.Solution.InnerText
	}
	return r.HTML()
}

// StatusCode returns the target page's status, 200 when the vendor did not
// report one.
func (r *ScrapeApiResponse) StatusCode() int {
	if r.api.Solution.StatusCode != 0 {
		return r.api.Solution.StatusCode
	}
	if r.api.Status != 0 {
		return r.api.Status
	}
	return 200
}

// URL returns the final url after redirects, falling back to the requested
// one.
func (r *ScrapeApiResponse) URL() string {
	if r.api.Solution.CurrentURL != "" {
		return r.api.Solution.CurrentURL
	}
	if r.api.Solution.URL != "" {
		return r.api.Solution.URL
	}
	return r.originalURL
}

func (r *ScrapeApiResponse) Cookies() []Cookie {
	return r.api.Solution.Cookies
}

func (r *ScrapeApiResponse) Headers() map[string]any {
	if r.api.Solution.ResponseHeaders != nil {
		return r.api.Solution.ResponseHeaders
	}
	return r.api.Solution.Headers
}

// XHRCalls returns the captured background requests, when xhr capture was
// requested through Extra.
func (r *ScrapeApiResponse) XHRCalls() []any {
	return r.api.Solution.XHRCalls
}

func (r *ScrapeApiResponse) JSResult() any {
	return r.api.Solution.JSResult
}

func (r *ScrapeApiResponse) ScreenshotURL() string {
	return r.api.ScreenshotURL
}

// CaptchaTokens returns solved captcha tokens when automatic solving was
// enabled.
func (r *ScrapeApiResponse) CaptchaTokens() []any {
	return r.api.Solution.JavascriptReturn
}

// AdditionalCost reports extra credits charged, e.g. for captcha solving.
func (r *ScrapeApiResponse) AdditionalCost() float64 {
	return r.api.AdditionalCost
}

// TimeElapsedMs is the vendor-reported processing time.
func (r *ScrapeApiResponse) TimeElapsedMs() int {
	return r.api.TimeElapsed
}

// Raw returns the decoded response body as a generic map, for fields the
// typed accessors do not cover.
func (r *ScrapeApiResponse) Raw() map[string]any {
	return r.raw
}

// Body returns the undecoded response bytes.
func (r *ScrapeApiResponse) Body() []byte {
	return r.rawBody
}

// Selector parses the HTML into a goquery document, built once and cached.
func (r *ScrapeApiResponse) Selector() (*goquery.Document, error) {
	if r.doc != nil {
		return r.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(r.HTML()))
	if err != nil {
		return nil, err
	}
	r.doc = doc
	return doc, nil
}

func looksLikeJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
