package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

type sample struct {
	Name   string           `json:"name" validate:"required,max=10"`
	Amount decimal.Decimal  `json:"amount" validate:"decimal_gt0"`
	Fee    *decimal.Decimal `json:"fee,omitempty" validate:"omitempty,decimal_gt0"`
	Kind   string           `json:"kind" validate:"oneof=public private"`
}

func TestValidateStruct(t *testing.T) {
	neg := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{Name: "Xmas", Amount: decimal.NewFromInt(10), Kind: "public"}, ""},
		{"missing name", sample{Amount: decimal.NewFromInt(10), Kind: "public"}, "name is required"},
		{"zero amount", sample{Name: "a", Amount: decimal.Zero, Kind: "public"}, "amount must be a positive amount"},
		{"negative fee", sample{Name: "a", Amount: decimal.NewFromInt(1), Fee: &neg, Kind: "public"}, "fee must be a positive amount"},
		{"bad kind", sample{Name: "a", Amount: decimal.NewFromInt(1), Kind: "secret"}, "kind must be one of [public private]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, errors.GetAppError(err).Details, tt.wantErr)
		})
	}
}
