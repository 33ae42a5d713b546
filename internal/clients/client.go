// Package clients holds the HTTP clients services use to call each other.
// Internal endpoints are authenticated with the shared X-Internal-Token.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hotelreserve/internal/middleware"
)

const requestTimeout = 5 * time.Second

type baseClient struct {
	baseURL       string
	internalToken string
	http          *http.Client
}

func newBaseClient(baseURL, internalToken string) baseClient {
	return baseClient{
		baseURL:       baseURL,
		internalToken: internalToken,
		http:          &http.Client{Timeout: requestTimeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs the request and decodes the envelope's data field into out.
func (c baseClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.internalToken != "" {
		req.Header.Set(middleware.InternalHeader, c.internalToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 || !env.Success {
		code := "UNKNOWN"
		message := "upstream error"
		if env.Error != nil {
			code = env.Error.Code
			message = env.Error.Message
		}
		return &UpstreamError{Status: resp.StatusCode, Code: code, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
