package dskhttp

import (
	"context"
	"net/http"

	"github.com/go-dsk/dsk"
)

// Client wraps an *http.Client, giving each request its own Op instead of a
// blocking call, so it composes with the rest of this module's combinators
// (UntilFirstDone against a timeout, OpGroup for concurrent fan-out, etc).
type Client struct {
	HTTP *http.Client
}

// NewClient wraps c. A nil c uses http.DefaultClient.
func NewClient(c *http.Client) *Client {
	if c == nil {
		c = http.DefaultClient
	}
	return &Client{HTTP: c}
}

// Get returns an Op that performs an HTTP GET against url.
func (c *Client) Get(url string) dsk.Op[*http.Response] {
	return dsk.BlockingCall(func(stdCtx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(stdCtx, http.MethodGet, url, nil)
		if err != nil {
			return nil, classifyError(err)
		}
		return c.doRequest(req)
	})
}

// Do returns an Op that performs req, suspending the caller's goroutine
// until the response headers (or a transport error) are available. req's
// own context is replaced with one derived from the op's owning Ctx's stop
// token, so requesting that stop source cancels the in-flight round trip.
func (c *Client) Do(req *http.Request) dsk.Op[*http.Response] {
	return dsk.BlockingCall(func(stdCtx context.Context) (*http.Response, error) {
		return c.doRequest(req.WithContext(stdCtx))
	})
}

func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	return resp, nil
}
