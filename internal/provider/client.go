package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	maxRetries     = 3
	retryBase      = time.Second
)

// Client talks to the provider's REST API with form-encoded requests and
// basic auth. Transport failures are retried with exponential backoff;
// HTTP errors are not, since the provider's webhook is the authoritative
// replay mechanism.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.Amount, 10))
	form.Set("line_items[0][price_data][product_data][name]", "Event tickets")
	form.Set("line_items[0][quantity]", "1")
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	// booking_id in metadata is how the webhook routes back.
	form.Set("metadata[booking_id]", params.BookingID)
	form.Set("payment_intent_data[metadata][booking_id]", params.BookingID)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	var pi PaymentIntent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

func (c *Client) GetCharge(ctx context.Context, id string) (*Charge, error) {
	var ch Charge
	if err := c.do(ctx, http.MethodGet, "/v1/charges/"+url.PathEscape(id), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) CreateRefund(ctx context.Context, params RefundParams) (*Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", params.PaymentIntentID)
	if params.Amount > 0 {
		form.Set("amount", strconv.FormatInt(params.Amount, 10))
	}
	if params.Reason != "" {
		form.Set("reason", params.Reason)
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var refund Refund
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", form, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBase << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return err
		}
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		req.SetBasicAuth(c.secretKey, "")

		res, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("provider request failed: %w", err)
			continue
		}

		return decodeResponse(res, out)
	}

	return lastErr
}

func decodeResponse(res *http.Response, out interface{}) error {
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(data, &envelope)

		return &APIError{
			Status:  res.StatusCode,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse provider response: %w", err)
	}

	return nil
}
