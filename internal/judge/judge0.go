package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultRapidAPIHost = "judge0-ce.p.rapidapi.com"

// ErrNotConfigured is returned when no judge URL is available.
var ErrNotConfigured = errors.New("judge API URL is not configured")

// Judge0Config holds the connection settings for a Judge0 instance.
// APIKey/APIHost are sent as RapidAPI headers for the hosted service;
// AuthToken is sent as X-Auth-Token when a self-hosted instance sets AUTHN_TOKEN.
type Judge0Config struct {
	URL       string `json:"url"`
	APIKey    string `json:"api_key,omitempty"`
	APIHost   string `json:"api_host,omitempty"`
	AuthToken string `json:"auth_token,omitempty"`
}

// ConfigSource yields judge settings. It is called once per submission so
// credential changes apply without a restart.
type ConfigSource func() Judge0Config

// EnvConfig reads JUDGE0_API_URL, JUDGE0_API_KEY, JUDGE0_API_HOST and
// JUDGE0_AUTH_TOKEN from the process environment.
func EnvConfig() Judge0Config {
	return Judge0Config{
		URL:       os.Getenv("JUDGE0_API_URL"),
		APIKey:    os.Getenv("JUDGE0_API_KEY"),
		APIHost:   os.Getenv("JUDGE0_API_HOST"),
		AuthToken: os.Getenv("JUDGE0_AUTH_TOKEN"),
	}
}

// StaticConfig returns a ConfigSource that always yields cfg.
func StaticConfig(cfg Judge0Config) ConfigSource {
	return func() Judge0Config { return cfg }
}

// Judge0 calls the Judge0 CE REST API in synchronous mode.
type Judge0 struct {
	config ConfigSource
	client *http.Client
}

// NewJudge0 constructs a Judge0 client. A zero timeout leaves only the
// transport's own limits in place.
func NewJudge0(src ConfigSource, timeout time.Duration) *Judge0 {
	if src == nil {
		src = EnvConfig
	}
	return &Judge0{
		config: src,
		client: &http.Client{Timeout: timeout},
	}
}

// Submit posts req to /submissions?base64_encoded=false&wait=true and
// returns the response body unchanged. Non-2xx statuses and non-JSON
// bodies are errors.
func (j *Judge0) Submit(ctx context.Context, req Request) (json.RawMessage, error) {
	cfg := j.config()
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	bodyJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(cfg.URL, "/") + "/submissions?base64_encoded=false&wait=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		host := cfg.APIHost
		if host == "" {
			host = defaultRapidAPIHost
		}
		httpReq.Header.Set("x-rapidapi-key", cfg.APIKey)
		httpReq.Header.Set("x-rapidapi-host", host)
	}
	if cfg.AuthToken != "" {
		httpReq.Header.Set("X-Auth-Token", cfg.AuthToken)
	}

	resp, err := j.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit to judge0: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("judge0 returned HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read judge0 response: %w", err)
	}
	if !json.Valid(raw) {
		return nil, errors.New("judge0 returned a malformed body")
	}
	return json.RawMessage(raw), nil
}
