package contact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FormClient posts submissions form-encoded to an external form backend.
type FormClient struct {
	endpoint string
	replyTo  string
	client   *http.Client
}

// NewFormClient returns a client for endpoint. replyTo is sent as the
// _replyto field.
func NewFormClient(endpoint, replyTo string, timeout time.Duration) *FormClient {
	return &FormClient{
		endpoint: endpoint,
		replyTo:  replyTo,
		client:   &http.Client{Timeout: timeout},
	}
}

// Send posts sub. Any 2xx answer is success; any other status yields a
// *StatusError.
func (f *FormClient) Send(ctx context.Context, sub Submission) error {
	form := url.Values{}
	form.Set("name", sub.Name)
	form.Set("email", sub.Email)
	form.Set("message", sub.Message)
	if f.replyTo != "" {
		form.Set("_replyto", f.replyTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting form: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}
