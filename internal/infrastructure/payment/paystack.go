package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/shared/config"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

const (
	defaultPaystackBaseURL = "https://api.paystack.co"
	// Maximum response body size kept from the provider (256KB)
	maxPaystackResponseSize = 256 << 10
)

// CallObserver receives the outcome of every provider call.
type CallObserver interface {
	ObserveGatewayCall(op string, elapsed time.Duration, err error)
}

// PaystackGateway implements paymentgateway.Gateway against the Paystack REST API.
type PaystackGateway struct {
	baseURL    string
	secretKey  string
	currency   string
	callback   string
	timeout    time.Duration
	httpClient *http.Client
	observer   CallObserver
	logger     logger.Interface
}

var _ paymentgateway.Gateway = (*PaystackGateway)(nil)

func NewPaystackGateway(cfg config.GatewayConfig, observer CallObserver, logger logger.Interface) *PaystackGateway {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultPaystackBaseURL
	}
	return &PaystackGateway{
		baseURL:   baseURL,
		secretKey: cfg.SecretKey,
		currency:  cfg.Currency,
		callback:  cfg.CallbackURL,
		timeout:   cfg.Timeout(),
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		observer: observer,
		logger:   logger,
	}
}

// envelope is the response wrapper Paystack uses for every endpoint.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (g *PaystackGateway) InitializeTransaction(ctx context.Context, req paymentgateway.InitializeRequest) (*paymentgateway.InitializeResponse, error) {
	body := map[string]any{
		"email":     req.Email,
		"amount":    req.Amount,
		"reference": req.Reference,
		"currency":  g.currencyOr(req.Currency),
	}
	if cb := firstNonEmpty(req.CallbackURL, g.callback); cb != "" {
		body["callback_url"] = cb
	}
	if len(req.Metadata) > 0 {
		body["metadata"] = req.Metadata
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	raw, err := g.do(ctx, "initialize", http.MethodPost, "/transaction/initialize", body, &data)
	if err != nil {
		return nil, err
	}

	return &paymentgateway.InitializeResponse{
		Reference:        firstNonEmpty(data.Reference, req.Reference),
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Raw:              raw,
	}, nil
}

func (g *PaystackGateway) VerifyTransaction(ctx context.Context, reference string) (*paymentgateway.Verification, error) {
	var data struct {
		Status    string          `json:"status"`
		Reference string          `json:"reference"`
		Amount    int64           `json:"amount"`
		Currency  string          `json:"currency"`
		Metadata  json.RawMessage `json:"metadata"`
	}
	path := "/transaction/verify/" + url.PathEscape(reference)
	raw, err := g.do(ctx, "verify", http.MethodGet, path, nil, &data)
	if err != nil {
		return nil, err
	}

	return &paymentgateway.Verification{
		Reference: firstNonEmpty(data.Reference, reference),
		Status:    data.Status,
		Amount:    data.Amount,
		Currency:  data.Currency,
		Metadata:  decodeMetadata(data.Metadata),
		Raw:       raw,
	}, nil
}

func (g *PaystackGateway) CreateTransferRecipient(ctx context.Context, req paymentgateway.RecipientRequest) (*paymentgateway.Recipient, error) {
	body := map[string]any{
		"type":           "nuban",
		"name":           req.Name,
		"account_number": req.AccountNumber,
		"bank_code":      req.BankCode,
		"currency":       g.currencyOr(req.Currency),
	}

	var data struct {
		RecipientCode string `json:"recipient_code"`
	}
	raw, err := g.do(ctx, "create recipient", http.MethodPost, "/transferrecipient", body, &data)
	if err != nil {
		return nil, err
	}
	if data.RecipientCode == "" {
		return nil, &paymentgateway.Error{Op: "create recipient", StatusCode: http.StatusOK, Body: "response carried no recipient code"}
	}
	return &paymentgateway.Recipient{Code: data.RecipientCode, Raw: raw}, nil
}

func (g *PaystackGateway) InitiateTransfer(ctx context.Context, req paymentgateway.TransferRequest) (*paymentgateway.Transfer, error) {
	body := map[string]any{
		"source":    "balance",
		"amount":    req.Amount,
		"recipient": req.RecipientCode,
		"reason":    req.Reason,
		"reference": req.Reference,
	}

	var data struct {
		Reference    string `json:"reference"`
		TransferCode string `json:"transfer_code"`
		Status       string `json:"status"`
	}
	raw, err := g.do(ctx, "transfer", http.MethodPost, "/transfer", body, &data)
	if err != nil {
		return nil, err
	}
	return &paymentgateway.Transfer{
		Reference:    firstNonEmpty(data.Reference, req.Reference),
		TransferCode: data.TransferCode,
		Status:       data.Status,
		Raw:          raw,
	}, nil
}

// do sends one request and decodes the envelope's data into out. The data object is also
// returned as a generic map so callers can pass the provider payload through unchanged.
func (g *PaystackGateway) do(ctx context.Context, op, method, path string, body any, out any) (raw map[string]any, err error) {
	start := time.Now()
	defer func() {
		if g.observer != nil {
			g.observer.ObserveGatewayCall(op, time.Since(start), err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &paymentgateway.Error{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, &paymentgateway.Error{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &paymentgateway.Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxPaystackResponseSize))
	if err != nil {
		return nil, &paymentgateway.Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !env.Status {
		g.logger.Warnw("payment gateway call failed",
			"op", op,
			"status_code", resp.StatusCode,
			"message", env.Message,
		)
		return nil, &paymentgateway.Error{Op: op, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, &paymentgateway.Error{Op: op, StatusCode: resp.StatusCode, Body: string(respBody), Err: fmt.Errorf("failed to decode data: %w", err)}
	}
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func (g *PaystackGateway) currencyOr(c string) string {
	return firstNonEmpty(c, g.currency)
}

// decodeMetadata tolerates the empty string Paystack returns when no metadata was sent.
func decodeMetadata(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var meta map[string]any
	if err := json.Unmarshal(raw, &meta); err == nil {
		return meta
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil && encoded != "" {
		_ = json.Unmarshal([]byte(encoded), &meta)
	}
	return meta
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
