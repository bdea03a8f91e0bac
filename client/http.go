package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// NewHTTPRequester returns a RequestFunc sending data as JSON over hc and
// decoding JSON responses. An empty body decodes to nil. Statuses of 400 and
// above fail with *Error.
func NewHTTPRequester(hc *http.Client) RequestFunc {
	if hc == nil {
		hc = http.DefaultClient
	}
	return func(ctx context.Context, url, method string, data interface{}, opts *RequestOptions) (interface{}, error) {
		var body io.Reader
		if data != nil {
			payload, err := json.Marshal(data)
			if err != nil {
				return nil, errors.Wrap(err, "encoding request body")
			}
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return nil, errors.Wrapf(err, "building %s %s", method, url)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if opts != nil {
			for k, v := range opts.Headers {
				req.Header.Set(k, v)
			}
		}

		res, err := hc.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %s", method, url)
		}
		defer res.Body.Close()

		raw, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s %s", method, url)
		}
		if res.StatusCode >= 400 && res.StatusCode < 600 {
			return nil, errors.WithStack(&Error{Code: res.StatusCode, Message: strings.TrimSpace(string(raw))})
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, errors.Wrapf(err, "decoding %s %s", method, url)
		}
		return decoded, nil
	}
}

// NewHTTPClient returns a Client backed by NewHTTPRequester.
func NewHTTPClient(hc *http.Client) *Client {
	return New(NewHTTPRequester(hc))
}
