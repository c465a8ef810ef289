package scrappey

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Result is the terminal outcome of one submitted config. Exactly one
// Result is delivered per config in a batch: either Response or Err is
// set, never both.
type Result struct {
	Response *ScrapeApiResponse
	Err      error
	// Config is the request this result belongs to; batch delivery is in
	// completion order, not submission order.
	Config ScrapeConfig
}

// Scrape runs one request through translation, dispatch and retry, and
// returns the response or the terminal error.
func (c *Client) Scrape(ctx context.Context, cfg ScrapeConfig) (*ScrapeApiResponse, error) {
	return c.ScrapeWithSession(ctx, cfg, "")
}

// ScrapeWithSession is Scrape with an explicit session id that wins over
// cfg.Session. The session is resolved into the payload once, before the
// first attempt; retries reuse the same payload.
func (c *Client) ScrapeWithSession(ctx context.Context, cfg ScrapeConfig, session string) (*ScrapeApiResponse, error) {
	ctx, span := tracer.Start(ctx, "client:Scrape")
	defer span.End()
	span.SetAttributes(attribute.KeyValue{
		Key:   "url",
		Value: attribute.StringValue(cfg.URL),
	})

	payload := cfg.payload(session)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	bo := retryBackOff(c.retryDelay, c.retryMaxDelay)

	var lastErr *Error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "context done")
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, err
		}

		// one gate slot per attempt, held only while the call is in
		// flight so backoff sleeps don't collapse effective concurrency
		select {
		case c.gate <- struct{}{}:
		case <-ctx.Done():
			span.SetStatus(codes.Error, "context done")
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, ctx.Err()
		}
		body, decoded, rerr := c.request(ctx, payload, timeout)
		<-c.gate

		if rerr == nil {
			slog.DebugContext(ctx, "scrape succeeded",
				"url", cfg.URL,
				"attempt", attempt+1,
			)
			return newScrapeApiResponse(body, decoded, cfg.URL), nil
		}

		rerr.URL = cfg.URL
		rerr.Attempts = attempt + 1

		if !rerr.Retryable() {
			span.SetStatus(codes.Error, "invalid credentials")
			return nil, rerr
		}

		lastErr = rerr
		if attempt == c.maxRetries {
			break
		}

		delay := bo.NextBackOff()
		slog.WarnContext(ctx, "scrape attempt failed, retrying",
			"url", cfg.URL,
			"attempt", attempt+1,
			"max_attempts", c.maxRetries+1,
			"delay", delay,
			"err", rerr.Message,
		)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			span.SetStatus(codes.Error, "context done")
			return nil, lastErr
		}
	}

	span.SetStatus(codes.Error, "retries exhausted")
	slog.ErrorContext(ctx, "scrape failed",
		"url", cfg.URL,
		"attempts", lastErr.Attempts,
		"err", lastErr.Message,
	)
	return nil, lastErr
}

// ConcurrentScrape fans a batch out and delivers results on the returned
// channel in completion order. The channel carries exactly len(cfgs)
// results and is then closed; an individual request's failure becomes its
// Result.Err and never affects its siblings. In-flight HTTP calls are
// bounded by the client's concurrency gate regardless of batch size.
func (c *Client) ConcurrentScrape(ctx context.Context, cfgs []ScrapeConfig) <-chan Result {
	return c.ConcurrentScrapeWithSession(ctx, cfgs, "")
}

// ConcurrentScrapeWithSession pins every request in the batch to the given
// session. Cancelling the context stops further attempts; results for
// requests already in flight are still delivered, as errors if they were
// aborted. The channel is buffered to the batch size, so an abandoned
// consumer leaks no goroutines.
func (c *Client) ConcurrentScrapeWithSession(ctx context.Context, cfgs []ScrapeConfig, session string) <-chan Result {
	ctx, span := tracer.Start(ctx, "client:ConcurrentScrape")
	span.SetAttributes(attribute.KeyValue{
		Key:   "batch_size",
		Value: attribute.IntValue(len(cfgs)),
	})

	results := make(chan Result, len(cfgs))
	wg := sync.WaitGroup{}

	for _, cfg := range cfgs {
		wg.Add(1)
		go func(cfg ScrapeConfig) {
			defer wg.Done()
			res, err := c.ScrapeWithSession(ctx, cfg, session)
			results <- Result{Response: res, Err: err, Config: cfg}
		}(cfg)
	}

	go func() {
		wg.Wait()
		span.End()
		close(results)
	}()

	return results
}

// retryBackOff builds the delay generator for one scrape call: attempt a
// sleeps base*2^a capped at max, jittered by ±25%.
func retryBackOff(base, max time.Duration) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = base
	bo.MaxInterval = max
	bo.Multiplier = 2
	bo.RandomizationFactor = 0.25
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}
