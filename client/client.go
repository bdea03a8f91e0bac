package client

import (
	"context"
	"fmt"
	"net/http"
)

// RequestOptions are per-request settings.
type RequestOptions struct {
	Headers map[string]string
}

// RequestFunc performs one request. data is the request body, encoded by the
// implementation; the decoded response body is returned.
type RequestFunc func(ctx context.Context, url, method string, data interface{}, opts *RequestOptions) (interface{}, error)

// Client exposes the HTTP verbs over a RequestFunc.
type Client struct {
	request RequestFunc
}

func New(request RequestFunc) *Client {
	return &Client{request: request}
}

func (c *Client) Get(ctx context.Context, url string, data interface{}, opts *RequestOptions) (interface{}, error) {
	return c.request(ctx, url, http.MethodGet, data, opts)
}

func (c *Client) Post(ctx context.Context, url string, data interface{}, opts *RequestOptions) (interface{}, error) {
	return c.request(ctx, url, http.MethodPost, data, opts)
}

func (c *Client) Put(ctx context.Context, url string, data interface{}, opts *RequestOptions) (interface{}, error) {
	return c.request(ctx, url, http.MethodPut, data, opts)
}

func (c *Client) Delete(ctx context.Context, url string, data interface{}, opts *RequestOptions) (interface{}, error) {
	return c.request(ctx, url, http.MethodDelete, data, opts)
}

// Error is returned for client and server error statuses.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Code)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Code, e.Message)
}
