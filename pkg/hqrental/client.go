package hqrental

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	EndpointDates             = "car-rental/reservations/dates"
	EndpointAdditionalCharges = "car-rental/reservations/additional-charges"
	EndpointCustomer          = "car-rental/reservations/customer"
	EndpointConfirm           = "car-rental/reservations/confirm"

	DefaultTimeout = 30 * time.Second

	defaultErrorMessage = "API request failed"
)

// Regions lists the CRM base URLs by region key.
var Regions = map[string]string{
	"america":      "https://api.caagcrm.com/api/",
	"america-3":    "https://api-america-3.caagcrm.com/api-america-3/",
	"america-west": "https://api-america-west.caagcrm.com/api-america-west/",
	"miami":        "https://api-miami.caagcrm.com/api-miami/",
	"europe":       "https://api-europe.caagcrm.com/api-europe/",
	"asia":         "https://api-asia.caagcrm.com/api-asia/",
}

// BaseURL resolves a region key.
func BaseURL(region string) (string, error) {
	base, ok := Regions[region]
	if !ok {
		keys := make([]string, 0, len(Regions))
		for k := range Regions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fmt.Errorf("unknown HQ Rental region %q (valid: %s)", region, strings.Join(keys, ", "))
	}
	return base, nil
}

type Config struct {
	Region      string
	TenantToken string
	UserToken   string
	Timeout     time.Duration

	// BaseURL overrides the region table, used for sandboxes and tests.
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	baseURL   string
	authToken string
	timeout   time.Duration
	http      *http.Client
	log       *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.TenantToken == "" || cfg.UserToken == "" {
		return nil, errors.New("HQ Rental API credentials not configured")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		var err error
		if baseURL, err = BaseURL(cfg.Region); err != nil {
			return nil, err
		}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:   baseURL,
		authToken: base64.StdEncoding.EncodeToString([]byte(cfg.TenantToken + ":" + cfg.UserToken)),
		timeout:   timeout,
		http:      httpClient,
		log:       log.With(zap.String("client", "hqrental")),
	}, nil
}

// APIError is the only error kind produced by the client.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Result is the normalized outcome of one CRM call. Data is meaningful only when
// Success is true, Error and StatusCode only when it is false.
type Result[T any] struct {
	Success    bool
	Data       T
	Error      string
	StatusCode int
}

// Err returns nil on success and an *APIError otherwise.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &APIError{Message: r.Error, StatusCode: r.StatusCode}
}

func failure[T any](message string, statusCode int) Result[T] {
	return Result[T]{Error: message, StatusCode: statusCode}
}

// Do performs one authenticated call. GET payloads become query parameters, POST
// payloads are sent as JSON. Transport, decoding and timeout failures are returned
// as a failed Result, never as a panic.
func Do[T any](ctx context.Context, c *Client, method, endpoint string, payload any) Result[T] {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + strings.TrimPrefix(endpoint, "/")
	log := c.log.With(zap.String("method", method), zap.String("endpoint", endpoint))

	var body io.Reader
	switch method {
	case http.MethodGet:
		query, err := toQuery(payload)
		if err != nil {
			return failure[T](err.Error(), 0)
		}
		if len(query) > 0 {
			target += "?" + query.Encode()
		}
	case http.MethodPost:
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				return failure[T](fmt.Sprintf("encode request: %v", err), 0)
			}
			body = bytes.NewReader(raw)
		}
	case http.MethodDelete:
	default:
		return failure[T](fmt.Sprintf("unsupported method %s", method), 0)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return failure[T](fmt.Sprintf("build request: %v", err), 0)
	}
	req.Header.Set("Authorization", "Basic "+c.authToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		message := err.Error()
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			message = fmt.Sprintf("request timed out after %s", c.timeout)
		case errors.Is(ctx.Err(), context.Canceled):
			message = "request cancelled"
		}
		log.Error("HQ Rental API call failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return failure[T](message, 0)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("HQ Rental API response could not be read", zap.Error(err))
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return failure[T](fmt.Sprintf("request timed out after %s", c.timeout), 0)
		}
		return failure[T](fmt.Sprintf("read response: %v", err), 0)
	}

	// A 204 or an empty 2xx body (typical for DELETE) has no envelope to unwrap
	if len(bytes.TrimSpace(raw)) == 0 {
		log.Debug("HQ Rental API call completed with empty body",
			zap.Int("http_status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
			return Result[T]{Success: true}
		}
		return failure[T](defaultErrorMessage, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Error("HQ Rental API returned invalid JSON",
			zap.Error(err),
			zap.Int("http_status", resp.StatusCode),
		)
		return failure[T](fmt.Sprintf("invalid JSON response: %v", err), 0)
	}

	log.Debug("HQ Rental API call completed",
		zap.Int("http_status", resp.StatusCode),
		zap.Bool("success", env.Success),
		zap.Duration("duration", time.Since(start)),
	)

	if !env.Success {
		message := env.errorMessage()
		if message == "" {
			message = defaultErrorMessage
		}
		statusCode := env.StatusCode
		if statusCode == 0 && resp.StatusCode >= http.StatusBadRequest {
			statusCode = resp.StatusCode
		}
		return failure[T](message, statusCode)
	}

	result := Result[T]{Success: true}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &result.Data); err != nil {
			log.Error("HQ Rental API data did not match the expected shape", zap.Error(err))
			return failure[T](fmt.Sprintf("decode response data: %v", err), 0)
		}
	}

	return result
}

func toQuery(payload any) (url.Values, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		query := url.Values{}
		for k, v := range p {
			query.Set(k, v)
		}
		return query, nil
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("query payload must be an object: %w", err)
		}
		query := url.Values{}
		for k, v := range fields {
			if v == nil {
				continue
			}
			query.Set(k, fmt.Sprint(v))
		}
		return query, nil
	}
}

func (c *Client) CheckDates(ctx context.Context, req DatesRequest) Result[DatesData] {
	return Do[DatesData](ctx, c, http.MethodPost, EndpointDates, req)
}

func (c *Client) PriceCharges(ctx context.Context, req ChargesRequest) Result[json.RawMessage] {
	return Do[json.RawMessage](ctx, c, http.MethodPost, EndpointAdditionalCharges, req)
}

func (c *Client) CreateCustomer(ctx context.Context, fields CustomerFields) Result[CustomerData] {
	return Do[CustomerData](ctx, c, http.MethodPost, EndpointCustomer, fields)
}

func (c *Client) ConfirmReservation(ctx context.Context, req ConfirmRequest) Result[json.RawMessage] {
	return Do[json.RawMessage](ctx, c, http.MethodPost, EndpointConfirm, req)
}

// DeleteCustomer removes a customer through an operator-configured endpoint.
func (c *Client) DeleteCustomer(ctx context.Context, endpoint string) Result[json.RawMessage] {
	return Do[json.RawMessage](ctx, c, http.MethodDelete, endpoint, nil)
}
