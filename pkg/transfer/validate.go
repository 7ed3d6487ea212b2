package transfer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"wallet_transfer_back/models"
)

// MinAmount наименьшая сумма перевода, которую принимает форма
const MinAmount = 0.00000001

var (
	addressRE = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	// только десятичная запись: без пробелов, 0x-префиксов, Inf и NaN
	amountRE = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every form field that failed its constraint.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid transfer: " + strings.Join(parts, "; ")
}

func IsAddress(s string) bool {
	return addressRE.MatchString(s)
}

// ParseForm превращает значения формы в TransferRequest.
// Пустые поля, адрес не по шаблону и сумма меньше MinAmount отклоняются.
// Значения проверяются как есть, без обрезки пробелов.
func ParseForm(form models.TransferForm) (models.TransferRequest, error) {
	var (
		req  models.TransferRequest
		errs []FieldError
	)

	to := form.ToAddress
	switch {
	case to == "":
		errs = append(errs, FieldError{Field: "to_address", Reason: "required"})
	case !IsAddress(to):
		errs = append(errs, FieldError{Field: "to_address", Reason: "must be 0x followed by 40 hex digits"})
	default:
		req.ToAddress = to
	}

	raw := form.Amount
	if raw == "" {
		errs = append(errs, FieldError{Field: "amount", Reason: "required"})
	} else {
		amount, err := strconv.ParseFloat(raw, 64)
		switch {
		case !amountRE.MatchString(raw), err != nil, math.IsNaN(amount), math.IsInf(amount, 0):
			errs = append(errs, FieldError{Field: "amount", Reason: "not a number"})
		case amount < MinAmount:
			errs = append(errs, FieldError{Field: "amount", Reason: fmt.Sprintf("must be at least %g", MinAmount)})
		default:
			req.Amount = amount
		}
	}

	if len(errs) > 0 {
		return models.TransferRequest{}, &ValidationError{Fields: errs}
	}
	return req, nil
}
