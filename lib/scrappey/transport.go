package scrappey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

// request performs one POST to the vendor API and classifies the result.
// It never retries; retry policy belongs to the dispatcher. The timeout
// covers the whole exchange, connect included.
func (c *Client) request(ctx context.Context, payload map[string]any, timeout time.Duration) ([]byte, map[string]any, *Error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.key).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("")
	if err != nil {
		if isTimeout(err) {
			return nil, nil, &Error{
				Kind:      KindTimeout,
				Message:   fmt.Sprintf("request timed out: %v", err),
				Transport: true,
				cause:     err,
			}
		}
		return nil, nil, &Error{
			Kind:    KindRequest,
			Message: fmt.Sprintf("http error: %v", err),
			cause:   err,
		}
	}

	body := res.Body()
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, nil, &Error{
			Kind:    KindRequest,
			Message: fmt.Sprintf("undecodable response (http %d): %v", res.StatusCode(), err),
			cause:   err,
		}
	}

	// a body-embedded error takes precedence over the HTTP status
	if msg, ok := decoded["error"].(string); ok {
		code, _ := decoded["code"].(string)
		if code == "" {
			code = "UNKNOWN"
		}
		return nil, nil, &Error{
			Kind:        c.classifier.Classify(code, msg),
			Code:        code,
			Message:     msg,
			APIResponse: decoded,
		}
	}

	if res.IsError() {
		return nil, nil, &Error{
			Kind:        KindRequest,
			Message:     fmt.Sprintf("unexpected http status %d", res.StatusCode()),
			APIResponse: decoded,
		}
	}

	return body, decoded, nil
}

// isTimeout covers both context deadlines and net-level timeouts.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
