package paymentgateway

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockGateway is an in-memory provider for local development. Initialized transactions
// verify as successful unless FailVerify is set.
type MockGateway struct {
	mu           sync.Mutex
	transactions map[string]InitializeRequest

	FailVerify    bool
	FailRecipient bool
	FailTransfer  bool
	TransferState string
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		transactions:  make(map[string]InitializeRequest),
		TransferState: "pending",
	}
}

func (m *MockGateway) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	m.mu.Lock()
	m.transactions[req.Reference] = req
	m.mu.Unlock()

	url := fmt.Sprintf("https://checkout.mock.local/%s", req.Reference)
	return &InitializeResponse{
		Reference:        req.Reference,
		AuthorizationURL: url,
		AccessCode:       "mock_" + req.Reference,
		Raw: map[string]any{
			"authorization_url": url,
			"access_code":       "mock_" + req.Reference,
			"reference":         req.Reference,
		},
	}, nil
}

func (m *MockGateway) VerifyTransaction(ctx context.Context, reference string) (*Verification, error) {
	m.mu.Lock()
	req, ok := m.transactions[reference]
	m.mu.Unlock()
	if !ok {
		return nil, &Error{Op: "verify", StatusCode: 404, Body: "transaction reference not found"}
	}

	status := "success"
	if m.FailVerify {
		status = "failed"
	}
	return &Verification{
		Reference: reference,
		Status:    status,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Metadata:  req.Metadata,
		Raw: map[string]any{
			"reference": reference,
			"status":    status,
			"amount":    req.Amount,
			"paid_at":   time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (m *MockGateway) CreateTransferRecipient(ctx context.Context, req RecipientRequest) (*Recipient, error) {
	if m.FailRecipient {
		return nil, &Error{Op: "create recipient", StatusCode: 422, Body: "could not resolve account name"}
	}
	code := fmt.Sprintf("RCP_%s_%s", req.BankCode, req.AccountNumber)
	return &Recipient{Code: code, Raw: map[string]any{"recipient_code": code}}, nil
}

func (m *MockGateway) InitiateTransfer(ctx context.Context, req TransferRequest) (*Transfer, error) {
	if m.FailTransfer {
		return nil, &Error{Op: "transfer", StatusCode: 400, Body: "insufficient provider balance"}
	}
	code := fmt.Sprintf("TRF_%d", time.Now().UnixNano())
	return &Transfer{
		Reference:    req.Reference,
		TransferCode: code,
		Status:       m.TransferState,
		Raw:          map[string]any{"transfer_code": code, "status": m.TransferState},
	}, nil
}
