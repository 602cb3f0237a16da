package dat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &httpStatusError{
		Code: resp.StatusCode,
		Body: strings.TrimSpace(string(b)),
	}
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	endpoint string,
	query url.Values,
	payload any,
) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.freightURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token())
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	return req, nil
}

// doJSON issues a request and decodes the response body into out. Responses
// outside wantStatus become httpStatusError; there is no retry here (the
// session-level re-authentication in EnsureSession is the only recovery).
func (c *Client) doJSON(req *http.Request, out any, wantStatus ...int) error {
	c.apiCalls.Add(1)

	resp, err := c.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	accepted := false
	for _, s := range wantStatus {
		if resp.StatusCode == s {
			accepted = true
			break
		}
	}
	if !accepted {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
