package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rama-crm/logging"
	"rama-crm/metrics"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const maxBodySize = 10 << 20

var errServerFailure = errors.New("server error")

// TokenSource hands out the bearer token of the current session. An empty
// token sends the request without Authorization.
type TokenSource interface {
	Token() string
}

type Options struct {
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
	HTTPClient         *http.Client
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	tokens     TokenSource
}

func New(baseURL string, tokens TokenSource, opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BreakerMaxFailures == 0 {
		opts.BreakerMaxFailures = 3
	}
	if opts.BreakerTimeout == 0 {
		opts.BreakerTimeout = 5 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "RemoteAPICB",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerMaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(name, int(to))
			logging.Logger.Warnf("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		breaker:    breaker,
		tokens:     tokens,
	}
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends one request and classifies the answer. The returned error is
// always a *ValidationError, *AuthError or *GenericError; on success the
// response is returned with a nil error. Nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, &GenericError{Message: err.Error()}
	}

	start := time.Now()
	var resp *Response
	_, err = c.breaker.Execute(func() (interface{}, error) {
		r, err := c.send(req)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode >= http.StatusInternalServerError {
			return nil, errServerFailure
		}
		return nil, nil
	})
	if resp == nil {
		metrics.RecordAPICall(method, "transport", time.Since(start))
		logging.Logger.Errorf("Event ID: API_REQUEST_FAILED, Description: %s %s failed: %v", method, path, err)
		return nil, &GenericError{Message: ResError(transportMessage(err))}
	}

	err = Classify(resp)
	metrics.RecordAPICall(method, outcome(err), time.Since(start))
	if err != nil {
		logging.Logger.Warnf("Event ID: API_REQUEST_REJECTED, Description: %s %s returned %d: %v", method, path, resp.StatusCode, err)
		return resp, err
	}
	logging.Logger.Debugf("Event ID: API_REQUEST_OK, Description: %s %s returned %d", method, path, resp.StatusCode)
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*Response, error) {
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	return newResponse(httpResp.StatusCode, body), nil
}

func outcome(err error) string {
	switch err.(type) {
	case nil:
		return "ok"
	case *ValidationError:
		return "validation"
	case *AuthError:
		return "auth"
	default:
		return "generic"
	}
}

func transportMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "Service temporarily unavailable: " + err.Error()
	}
	return err.Error()
}
