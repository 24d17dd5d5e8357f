package intake

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// AddInput holds the parameters for logging one drink.
type AddInput struct {
	Amount    float64
	DrinkType *string
}

// validate checks all fields against the rules and collects all errors.
func (i AddInput) validate(requireDrinkType bool, maxAmount float64) error {
	var errs []domain.FieldError

	switch {
	case math.IsNaN(i.Amount) || math.IsInf(i.Amount, 0):
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be a number"})
	case i.Amount <= 0:
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	case maxAmount > 0 && i.Amount > maxAmount:
		errs = append(errs, domain.FieldError{Field: "amount", Message: "max " + strconv.FormatFloat(maxAmount, 'f', -1, 64)})
	}

	drinkType := ""
	if i.DrinkType != nil {
		drinkType = strings.TrimSpace(*i.DrinkType)
	}
	if requireDrinkType && drinkType == "" {
		errs = append(errs, domain.FieldError{Field: "drink_type", Message: "required"})
	}
	if utf8.RuneCountInString(drinkType) > MaxDrinkTypeLength {
		errs = append(errs, domain.FieldError{Field: "drink_type", Message: "max 64 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// HistoryInput selects which records History returns.
// An empty Date means the whole collection.
type HistoryInput struct {
	Date string
}

// Validate checks the optional date filter.
func (i HistoryInput) Validate() error {
	if i.Date == "" {
		return nil
	}
	if _, err := domain.ParseDate(i.Date); err != nil {
		return domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return nil
}

// ParseAmount converts a raw form value into an amount. It accepts decimal
// numbers and rejects empty, non-numeric and non-finite input. Range checks
// happen in Add.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewValidationError("amount", "required")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewValidationError("amount", "must be a number")
	}
	return v, nil
}
