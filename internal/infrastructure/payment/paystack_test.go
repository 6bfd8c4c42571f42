package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/shared/config"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type recordedCall struct {
	op  string
	err error
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (o *recordingObserver) ObserveGatewayCall(op string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, recordedCall{op: op, err: err})
}

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*PaystackGateway, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	obs := &recordingObserver{}
	gw := NewPaystackGateway(config.GatewayConfig{
		Provider:       "paystack",
		BaseURL:        srv.URL,
		SecretKey:      "sk_test_123",
		Currency:       "NGN",
		CallbackURL:    "https://app.example.com/payments/callback",
		TimeoutSeconds: 5,
	}, obs, logger.NewLogger())
	return gw, obs
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestPaystackGateway_InitializeTransaction(t *testing.T) {
	var got map[string]any
	gw, obs := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(w, http.StatusOK, map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code":       "abc",
				"reference":         "ref-1",
			},
		})
	})

	resp, err := gw.InitializeTransaction(context.Background(), paymentgateway.InitializeRequest{
		Email:     "payer@example.com",
		Amount:    500000,
		Reference: "ref-1",
		Metadata:  map[string]any{"package_id": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc", resp.AuthorizationURL)
	assert.Equal(t, "abc", resp.AccessCode)
	assert.Equal(t, "abc", resp.Raw["access_code"])

	assert.Equal(t, "payer@example.com", got["email"])
	assert.EqualValues(t, 500000, got["amount"])
	assert.Equal(t, "NGN", got["currency"])
	assert.Equal(t, "https://app.example.com/payments/callback", got["callback_url"])
	assert.EqualValues(t, 3, got["metadata"].(map[string]any)["package_id"])

	require.Len(t, obs.calls, 1)
	assert.Equal(t, "initialize", obs.calls[0].op)
	assert.NoError(t, obs.calls[0].err)
}

func TestPaystackGateway_VerifyTransaction(t *testing.T) {
	tests := []struct {
		name     string
		metadata any
		wantMeta map[string]any
	}{
		{
			name:     "object metadata",
			metadata: map[string]any{"contributor_type": "user", "contributor_id": 7},
			wantMeta: map[string]any{"contributor_type": "user", "contributor_id": float64(7)},
		},
		{
			name:     "metadata sent as a string",
			metadata: `{"contributor_type":"contact","contributor_id":"11"}`,
			wantMeta: map[string]any{"contributor_type": "contact", "contributor_id": "11"},
		},
		{
			name:     "no metadata",
			metadata: "",
			wantMeta: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/transaction/verify/ref-9", r.URL.Path)
				writeJSON(w, http.StatusOK, map[string]any{
					"status": true,
					"data": map[string]any{
						"status":    "success",
						"reference": "ref-9",
						"amount":    500000,
						"currency":  "NGN",
						"metadata":  tt.metadata,
					},
				})
			})

			v, err := gw.VerifyTransaction(context.Background(), "ref-9")
			require.NoError(t, err)
			assert.True(t, v.Succeeded())
			assert.Equal(t, int64(500000), v.Amount)
			assert.Equal(t, tt.wantMeta, v.Metadata)
		})
	}
}

func TestPaystackGateway_FailuresCarryUpstreamDetails(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusNotFound, body: `{"status":false,"message":"Transaction reference not found"}`},
		{name: "status false on 200", status: http.StatusOK, body: `{"status":false,"message":"Invalid key"}`},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, obs := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := gw.VerifyTransaction(context.Background(), "missing")
			var gwErr *paymentgateway.Error
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, "verify", gwErr.Op)
			assert.Equal(t, tt.status, gwErr.StatusCode)
			assert.Equal(t, tt.body, gwErr.Body)

			require.Len(t, obs.calls, 1)
			assert.Error(t, obs.calls[0].err)
		})
	}
}

func TestPaystackGateway_Transfers(t *testing.T) {
	gw, obs := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/transferrecipient":
			assert.Equal(t, "nuban", body["type"])
			assert.Equal(t, "058", body["bank_code"])
			assert.Equal(t, "NGN", body["currency"])
			writeJSON(w, http.StatusCreated, map[string]any{
				"status": true,
				"data":   map[string]any{"recipient_code": "RCP_1", "active": true},
			})
		case "/transfer":
			assert.Equal(t, "balance", body["source"])
			assert.Equal(t, "RCP_1", body["recipient"])
			assert.EqualValues(t, 300000, body["amount"])
			writeJSON(w, http.StatusOK, map[string]any{
				"status": true,
				"data":   map[string]any{"transfer_code": "TRF_1", "status": "pending", "reference": "wd-1"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	recipient, err := gw.CreateTransferRecipient(ctx, paymentgateway.RecipientRequest{
		Name: "Ada Obi", AccountNumber: "0123456789", BankCode: "058",
	})
	require.NoError(t, err)
	assert.Equal(t, "RCP_1", recipient.Code)

	transfer, err := gw.InitiateTransfer(ctx, paymentgateway.TransferRequest{
		RecipientCode: recipient.Code, Amount: 300000, Reason: "payout", Reference: "wd-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "TRF_1", transfer.TransferCode)
	assert.Equal(t, "pending", transfer.Status)
	assert.Equal(t, "wd-1", transfer.Reference)

	require.Len(t, obs.calls, 2)
	assert.Equal(t, "create recipient", obs.calls[0].op)
	assert.Equal(t, "transfer", obs.calls[1].op)
}

func TestPaystackGateway_RecipientWithoutCode(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": true, "data": map[string]any{}})
	})

	_, err := gw.CreateTransferRecipient(context.Background(), paymentgateway.RecipientRequest{
		Name: "Ada Obi", AccountNumber: "0123456789", BankCode: "058",
	})
	var gwErr *paymentgateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "create recipient", gwErr.Op)
}

func TestNewGateway(t *testing.T) {
	log := logger.NewLogger()

	gw, err := NewGateway(config.GatewayConfig{Provider: ProviderMock}, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &paymentgateway.MockGateway{}, gw)

	gw, err = NewGateway(config.GatewayConfig{Provider: ProviderPaystack, SecretKey: "sk"}, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &PaystackGateway{}, gw)

	_, err = NewGateway(config.GatewayConfig{Provider: ProviderPaystack}, nil, log)
	assert.Error(t, err)

	_, err = NewGateway(config.GatewayConfig{Provider: "stripe"}, nil, log)
	assert.Error(t, err)
}
