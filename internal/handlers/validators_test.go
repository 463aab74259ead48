package handlers

import (
	"fmt"
	"testing"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerCustomValidations(v))

	type payload struct {
		Amount   string `validate:"required,positive_amount"`
		Opening  string `validate:"omitempty,nonnegative_amount"`
		Currency string `validate:"currency_code"`
	}

	tests := []struct {
		name  string
		in    payload
		valid bool
		tag   string
	}{
		{"valid", payload{Amount: "10.50", Opening: "0", Currency: "usd"}, true, ""},
		{"zero amount", payload{Amount: "0", Currency: "USD"}, false, "positive_amount"},
		{"negative amount", payload{Amount: "-1", Currency: "USD"}, false, "positive_amount"},
		{"garbage amount", payload{Amount: "1O", Currency: "USD"}, false, "positive_amount"},
		{"amount beyond four decimals", payload{Amount: "1.00005", Currency: "USD"}, false, "positive_amount"},
		{"amount below smallest unit", payload{Amount: "0.00001", Currency: "USD"}, false, "positive_amount"},
		{"trailing zeros within scale", payload{Amount: "1.50000", Currency: "USD"}, true, ""},
		{"opening beyond four decimals", payload{Amount: "1", Opening: "0.12345", Currency: "USD"}, false, "nonnegative_amount"},
		{"negative opening", payload{Amount: "1", Opening: "-0.01", Currency: "USD"}, false, "nonnegative_amount"},
		{"long currency", payload{Amount: "1", Currency: "USDT"}, false, "currency_code"},
		{"digits in currency", payload{Amount: "1", Currency: "U5D"}, false, "currency_code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.tag, verrs[0].Tag())
		})
	}
}

func TestDetail(t *testing.T) {
	wrapped := fmt.Errorf("delete user: %w", fmt.Errorf("%w: you cannot delete your own account", apperrors.ErrValidation))
	assert.Equal(t, "you cannot delete your own account", detail(wrapped, apperrors.ErrValidation))
	assert.Equal(t, "validation error", detail(apperrors.ErrValidation, apperrors.ErrValidation))
}
