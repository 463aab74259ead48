package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrValidatorInit is returned when custom validator registration fails.
var ErrValidatorInit = errors.New("validator initialization failed")

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators installs the custom binding tags on gin's validator engine:
// positive_amount, nonnegative_amount (decimal strings) and currency_code (ISO 4217 shape).
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("%w: unexpected binding engine", ErrValidatorInit)
			return
		}
		validatorsErr = registerCustomValidations(v)
	})
	return validatorsErr
}

func registerCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"positive_amount":    amountRule(func(d decimal.Decimal) bool { return d.IsPositive() }),
		"nonnegative_amount": amountRule(func(d decimal.Decimal) bool { return !d.IsNegative() }),
		"currency_code":      validCurrencyCode,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("%w: failed to register '%s': %w", ErrValidatorInit, tag, err)
		}
	}
	return nil
}

// amountRule validates string amounts within the stored scale; an empty string is left to the required tag.
func amountRule(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		str := strings.TrimSpace(fl.Field().String())
		if str == "" {
			return true
		}
		d, err := decimal.NewFromString(str)
		if err != nil || !domain.FitsAmountScale(d) {
			return false
		}
		return ok(d)
	}
}

func validCurrencyCode(fl validator.FieldLevel) bool {
	code := strings.TrimSpace(fl.Field().String())
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// bindingMessage turns the first validator error into a short, client-safe message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "malformed request"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "positive_amount":
		return fmt.Sprintf("'%s' must be a positive amount with at most %d decimal places", field, domain.AmountScale)
	case "nonnegative_amount":
		return fmt.Sprintf("'%s' must be a non-negative amount with at most %d decimal places", field, domain.AmountScale)
	case "currency_code":
		return fmt.Sprintf("'%s' must be a 3-letter currency code", field)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s]", field, fe.Param())
	case "email":
		return fmt.Sprintf("'%s' must be a valid email", field)
	case "min":
		return fmt.Sprintf("'%s' must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("'%s' must be at most %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("'%s' must be a date in YYYY-MM-DD format", field)
	case "nefield":
		return fmt.Sprintf("'%s' must differ from '%s'", field, fe.Param())
	default:
		return fmt.Sprintf("'%s' failed '%s' check", field, fe.Tag())
	}
}
