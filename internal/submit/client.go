// Package submit is the client side of the submission pipeline.
//
// A Client turns (language, source, test cases) into a proxy payload, posts
// it to the application's own POST /api/submit route and decodes whatever
// judge result comes back.
//
// Usage:
//
//	client := submit.New("http://localhost:8080")
//	res, err := client.Submit(ctx, judge.Python, "print(1)", []judge.TestCase{{Output: "1"}})
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gsarma/algodojo/internal/judge"
)

// ErrSubmissionFailed is returned for any transport failure or non-2xx
// reply from the proxy.
var ErrSubmissionFailed = errors.New("submission failed")

const submitPath = "/api/submit"

// Client posts payloads to the submission proxy.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client. baseURL is the origin serving /api/submit.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Submit sends source in the given language to the proxy. Only the first
// test case is judged; with none, an empty input/output pair is sent.
func (c *Client) Submit(ctx context.Context, lang judge.Language, source string, cases []judge.TestCase) (*judge.Result, error) {
	id, err := lang.ID()
	if err != nil {
		return nil, err
	}
	payload := judge.Payload{
		LanguageID: id,
		SourceCode: source,
		TestCases:  []judge.TestCase{judge.FirstCase(cases)},
	}
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload judge.Payload) (*judge.Result, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("submit: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	res, err := judge.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	return res, nil
}

func parseError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return fmt.Errorf("%w: HTTP %d: %s", ErrSubmissionFailed, resp.StatusCode, msg)
}
