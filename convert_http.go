package mdhtml

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPConvertRequest configures HTTPConvert.
type HTTPConvertRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []Option
}

// HTTPConvert fetches Markdown over HTTP(S) and writes its HTML rendering.
func HTTPConvert(ctx context.Context, req HTTPConvertRequest) error {
	if req.URL == "" {
		return fmt.Errorf("http convert: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("http convert: Writer is nil")
	}
	body, err := OpenURL(ctx, req.Client, req.URL)
	if err != nil {
		return fmt.Errorf("http convert: %w", err)
	}
	defer body.Close()
	return Convert(ConvertRequest{
		Reader:  body,
		Writer:  req.Writer,
		Options: req.Options,
	})
}

// OpenURL issues a GET for rawURL and returns the response body. Only http
// and https URLs are accepted, and any status outside 2xx is an error. A nil
// client means http.DefaultClient.
func OpenURL(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get %s: status %s", rawURL, resp.Status)
	}
	return resp.Body, nil
}
