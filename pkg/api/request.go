package api

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// getJSON performs one GET and returns a copy of the body for 200 responses.
// Non-200 responses become a LookupError classified by status.
func getJSON(ctx context.Context, cm *ConnectionManager, source, uri string, headers map[string]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LookupError{Source: source, Kind: KindCanceled, Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if ua := cm.Config().UserAgent; ua != "" {
		req.Header.SetUserAgent(ua)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	timeout := cm.Config().RequestTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout || timeout <= 0 {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, &LookupError{Source: source, Kind: KindTransient, Err: context.DeadlineExceeded}
	}

	if err := cm.GetFastHTTPClient().DoTimeout(req, resp, timeout); err != nil {
		return nil, &LookupError{Source: source, Kind: KindTransient, Err: fmt.Errorf("request failed: %w", err)}
	}

	status := resp.StatusCode()
	if status != fasthttp.StatusOK {
		return nil, &LookupError{
			Source: source,
			Kind:   ClassifyStatus(status),
			Status: status,
			Err:    fmt.Errorf("unexpected response: %s", truncate(resp.Body(), 200)),
		}
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

func truncate(body []byte, n int) string {
	if len(body) > n {
		return string(body[:n])
	}
	return string(body)
}
