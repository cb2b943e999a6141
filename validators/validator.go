package validators

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate checks i and turns any failure into a 400 with a readable message
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("`%s` is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("`%s` must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("`%s` must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("`%s` must be at most %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("`%s` must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("`%s` failed on the '%s' rule", fe.Field(), fe.Tag())
	}
}
