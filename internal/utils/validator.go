// internal/utils/validator.go
package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/storefront/internal/cart"
	"github.com/javajoker/storefront/internal/catalog"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("sort_key", validateSortKey)
	validate.RegisterValidation("price_range", validatePriceRange)
	validate.RegisterValidation("coupon_code", validateCouponCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName reports fields by their json/form name.
func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func validateSortKey(fl validator.FieldLevel) bool {
	return catalog.SortKey(fl.Field().String()).Valid()
}

func validatePriceRange(fl validator.FieldLevel) bool {
	_, err := catalog.ParsePriceRange(fl.Field().String())
	return err == nil
}

func validateCouponCode(fl validator.FieldLevel) bool {
	_, err := cart.ValidateCoupon(fl.Field().String())
	return err == nil
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "lte":
		return e.Field() + " must be less than or equal to " + e.Param()
	case "sort_key":
		keys := catalog.SortKeys()
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = string(k)
		}
		return e.Field() + " must be one of " + strings.Join(names, ", ")
	case "price_range":
		return e.Field() + " must look like 10-50 or 100+"
	case "coupon_code":
		return "Coupon must be 3-32 letters or digits"
	default:
		return e.Field() + " is invalid"
	}
}
