package dto

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// ValidPeriod accepts payroll periods in YYYY-MM form.
var ValidPeriod validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := time.Parse(domain.PeriodFormat, s)
		return err == nil
	}
	return false
}

// ValidPositiveDecimal accepts decimals strictly greater than zero.
var ValidPositiveDecimal validator.Func = func(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	return ok && d.IsPositive()
}

// ValidNonNegativeDecimal accepts decimals greater than or equal to zero.
var ValidNonNegativeDecimal validator.Func = func(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	return ok && !d.IsNegative()
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// decimalValue lets tags see a decimal.Decimal as its string form instead of a struct.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// RegisterValidators installs the custom binding tags on v.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("yyyymm", ValidPeriod); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_gt0", ValidPositiveDecimal); err != nil {
		return err
	}
	return v.RegisterValidation("decimal_gte0", ValidNonNegativeDecimal)
}
