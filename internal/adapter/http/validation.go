package http

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// decimal.Decimal fields validate as their exact string form; the dpos,
	// dgte0 and dec2 tags parse it back. Going through float64 here would
	// reject legitimate 2-dp amounts once they exceed float precision.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	decField := func(fl validator.FieldLevel) (decimal.Decimal, bool) {
		d, err := decimal.NewFromString(fl.Field().String())
		return d, err == nil
	}

	// group/member/loan ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// amount > 0
	_ = v.RegisterValidation("dpos", func(fl validator.FieldLevel) bool {
		d, ok := decField(fl)
		return ok && d.IsPositive()
	})
	// amount >= 0
	_ = v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := decField(fl)
		return ok && !d.IsNegative()
	})
	// max 2 decimal places (KES cents)
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		d, ok := decField(fl)
		return ok && d.Equal(d.Round(2))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "dpos":
			out = append(out, FieldError{Field: field, Message: "must be greater than 0"})
		case "dgte0":
			out = append(out, FieldError{Field: field, Message: "must be zero or greater"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
