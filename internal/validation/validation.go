// AngelaMos | 2026
// validation.go

// Package validation holds the field constraints shared by every mutating
// operation. Services call Struct before any repository write.
package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/store-ratings/internal/core"
)

const (
	PasswordMinLen  = 8
	PasswordMaxLen  = 16
	PasswordSymbols = "!@#$%^&*"

	RatingMin = 1
	RatingMax = 5

	// PriceScale matches the NUMERIC(12,2) products.price column.
	PriceScale = 2
)

var PriceMax = decimal.RequireFromString("9999999999.99")

var (
	instance *validator.Validate
	initOnce sync.Once
)

// Validator returns the process-wide validator with the custom rules
// registered.
func Validator() *validator.Validate {
	initOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		mustRegister(v, "password", passwordRule)
		mustRegister(v, "role", roleRule)
		mustRegister(v, "rating", ratingRule)
		mustRegister(v, "price", priceRule)

		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// Struct validates s and returns a ValidationError describing every failing
// field, or nil.
func Struct(s any) error {
	if err := Validator().Struct(s); err != nil {
		return core.ValidationError(core.FormatValidationError(err))
	}
	return nil
}

// decimalValue lets numeric tags such as gt=0 apply to decimal.Decimal.
func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

func passwordRule(fl validator.FieldLevel) bool {
	return IsValidPassword(fl.Field().String())
}

func roleRule(fl validator.FieldLevel) bool {
	return IsValidRole(fl.Field().String())
}

func ratingRule(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IsValidRating(fl.Field().Int())
	default:
		return false
	}
}

// priceRule checks the original decimal. Other rules on the field see the
// float64 from decimalValue.
func priceRule(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}
	d, ok := parent.FieldByName(fl.StructFieldName()).Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return IsValidPrice(d)
}

func IsValidPassword(p string) bool {
	n := len([]rune(p))
	if n < PasswordMinLen || n > PasswordMaxLen {
		return false
	}

	var hasUpper, hasSymbol bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}

	return hasUpper && hasSymbol
}

func IsValidRole(role string) bool {
	switch role {
	case "user", "admin", "owner":
		return true
	}
	return false
}

func IsValidRating(v int64) bool {
	return v >= RatingMin && v <= RatingMax
}

// IsValidPrice accepts positive amounts that fit the price column exactly.
func IsValidPrice(d decimal.Decimal) bool {
	return d.IsPositive() &&
		d.Equal(d.Truncate(PriceScale)) &&
		d.LessThanOrEqual(PriceMax)
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
