package scrappey

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"scrappey-go/lib/configutil"
	"scrappey-go/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("scrappey")

const (
	DefaultBaseURL = "https://publisher.scrappey.com/api/v1"

	// MaxAllowedConcurrency is the vendor-side ceiling on simultaneous
	// requests per key.
	MaxAllowedConcurrency = 100

	DefaultTimeout       = 120 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = time.Second
	DefaultRetryMaxDelay = 30 * time.Second
)

type ClientOptions struct {
	// Key is the API key; falls back to the SCRAPPEY_KEY environment
	// variable.
	Key string
	// BaseURL defaults to the public API endpoint.
	BaseURL string
	// MaxConcurrency bounds simultaneous in-flight HTTP calls. Clamped to
	// [1, 100]; use MaxAllowedConcurrency for the vendor maximum.
	MaxConcurrency int
	// Timeout is the default per-attempt deadline.
	Timeout time.Duration
	// MaxRetries is the number of retries after the initial attempt.
	// Zero means the default of 3; a negative value disables retries.
	MaxRetries int
	// RetryDelay is the backoff base, RetryMaxDelay the cap.
	RetryDelay    time.Duration
	RetryMaxDelay time.Duration
	// Classifier overrides the error classification rules.
	Classifier *Classifier
}

// Client talks to the vendor API. It is safe for concurrent use; the
// concurrency gate it owns bounds in-flight HTTP calls across every
// Scrape and ConcurrentScrape running on it.
type Client struct {
	http *resty.Client
	key  string

	maxConcurrency int
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
	retryMaxDelay  time.Duration
	classifier     Classifier

	// gate is acquired per attempt, never held across a backoff sleep.
	gate chan struct{}
}

// NewClient validates the credential and fixes up option defaults. A
// missing key is the only construction failure; everything after this
// point surfaces per-request.
func NewClient(opts ClientOptions) (*Client, error) {
	key := opts.Key
	if key == "" {
		key = os.Getenv("SCRAPPEY_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("scrappey: api key is required, set ClientOptions.Key or SCRAPPEY_KEY")
	}

	concurrency := opts.MaxConcurrency
	switch {
	case concurrency < 1:
		concurrency = 1
	case concurrency > MaxAllowedConcurrency:
		slog.Warn("max concurrency exceeds the vendor limit, clamping",
			"requested", concurrency,
			"limit", MaxAllowedConcurrency,
		)
		concurrency = MaxAllowedConcurrency
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	} else if maxRetries < 0 {
		maxRetries = 0
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	retryMaxDelay := opts.RetryMaxDelay
	if retryMaxDelay <= 0 {
		retryMaxDelay = DefaultRetryMaxDelay
	}
	classifier := DefaultClassifier
	if opts.Classifier != nil {
		classifier = *opts.Classifier
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("user-agent", "scrappey-go/1.0")

	telemetry.InstrumentResty(client, "scrappey/http")
	if restyOutput != nil {
		installInstrumentOutput(client)
	}

	return &Client{
		http:           client,
		key:            key,
		maxConcurrency: concurrency,
		timeout:        timeout,
		maxRetries:     maxRetries,
		retryDelay:     retryDelay,
		retryMaxDelay:  retryMaxDelay,
		classifier:     classifier,
		gate:           make(chan struct{}, concurrency),
	}, nil
}

// clientConfig is the json5 file shape read by OptionsFromConfig.
type clientConfig struct {
	Key                  string  `json:"key"`
	BaseUrl              string  `json:"base_url"`
	MaxConcurrency       int     `json:"max_concurrency"`
	TimeoutSeconds       float64 `json:"timeout_seconds"`
	MaxRetries           int     `json:"max_retries"`
	RetryDelaySeconds    float64 `json:"retry_delay_seconds"`
	RetryMaxDelaySeconds float64 `json:"retry_max_delay_seconds"`
}

// OptionsFromConfig loads ClientOptions from a layered json5 config file
// (e.g. "scrappey.json5"), searching upward from the working directory.
func OptionsFromConfig(name string) (ClientOptions, error) {
	config, err := configutil.ReadRecursively[clientConfig](name)
	if err != nil {
		return ClientOptions{}, err
	}
	return ClientOptions{
		Key:            config.Key,
		BaseURL:        config.BaseUrl,
		MaxConcurrency: config.MaxConcurrency,
		Timeout:        secondsToDuration(config.TimeoutSeconds),
		MaxRetries:     config.MaxRetries,
		RetryDelay:     secondsToDuration(config.RetryDelaySeconds),
		RetryMaxDelay:  secondsToDuration(config.RetryMaxDelaySeconds),
	}, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// SessionOptions configures CreateSession. All fields are optional.
type SessionOptions struct {
	// Session names the session; a random name is generated when empty.
	Session string
	// Proxy pins the session to a specific proxy url.
	Proxy string
	// Extra merges arbitrary vendor parameters into the create payload.
	Extra map[string]any
}

// CreateSession opens a persistent browser session on the vendor and
// returns its id, to be passed through ScrapeWithSession or
// ScrapeConfig.Session.
func (c *Client) CreateSession(ctx context.Context, opts SessionOptions) (string, error) {
	ctx, span := tracer.Start(ctx, "client:CreateSession")
	defer span.End()

	name := opts.Session
	if name == "" {
		generated, err := random.String(24)
		if err != nil {
			span.SetStatus(codes.Error, "failed to generate session name")
			return "", err
		}
		name = generated
	}

	payload := map[string]any{
		"cmd":     "sessions.create",
		"session": name,
	}
	if opts.Proxy != "" {
		payload["proxy"] = opts.Proxy
	}
	for k, v := range opts.Extra {
		payload[k] = v
	}

	_, decoded, rerr := c.request(ctx, payload, c.timeout)
	if rerr != nil {
		span.SetStatus(codes.Error, "session create failed")
		return "", rerr
	}

	id, _ := decoded["session"].(string)
	if id == "" {
		span.SetStatus(codes.Error, "no session id returned")
		return "", fmt.Errorf("scrappey: session create returned no session id")
	}

	span.SetAttributes(attribute.KeyValue{
		Key:   "session",
		Value: attribute.StringValue(id),
	})
	slog.DebugContext(ctx, "created session", "session", id)
	return id, nil
}

// DestroySession tears down a session created with CreateSession.
func (c *Client) DestroySession(ctx context.Context, session string) error {
	ctx, span := tracer.Start(ctx, "client:DestroySession")
	defer span.End()

	payload := map[string]any{
		"cmd":     "sessions.destroy",
		"session": session,
	}
	_, _, rerr := c.request(ctx, payload, c.timeout)
	if rerr != nil {
		span.SetStatus(codes.Error, "session destroy failed")
		return rerr
	}
	return nil
}
