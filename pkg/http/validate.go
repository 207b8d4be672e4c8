package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

func init() {
	// Report the wire name of a failing field, not the Go name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"param", "query", "json"} {
			if tag, ok := fld.Tag.Lookup(key); ok {
				name := strings.SplitN(tag, ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
		}
		return fld.Name
	})
}

// BindAndValidate binds path, query, and body parameters into req, applies
// struct defaults, and validates. A nil return means req is ready to use.
func BindAndValidate(c echo.Context, req interface{}) []ValidationError {
	if err := c.Bind(req); err != nil {
		return bindFailure(err)
	}
	if err := defaults.Set(req); err != nil {
		return bindFailure(err)
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return bindFailure(err)
	}
	return nil
}

func bindFailure(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make([]ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, newValidationError(fe))
		}
		return out
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return []ValidationError{{Code: "ERR_BIND", Message: fmt.Sprintf("%v", he.Message)}}
	}
	return []ValidationError{{Code: "ERR_BIND", Message: err.Error()}}
}

// newValidationError renders one field failure with the params a caller
// needs to present it.
func newValidationError(fe validator.FieldError) ValidationError {
	ve := ValidationError{
		Code:   "ERR_" + strings.ToUpper(fe.Tag()),
		Field:  fe.Field(),
		Params: map[string]interface{}{},
	}

	switch fe.Tag() {
	case "required":
		ve.Message = fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		options := strings.Split(fe.Param(), " ")
		ve.Message = fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(options, ", "))
		ve.Params["options"] = options
	case "min", "gte":
		ve.Message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		ve.Params["min"] = fe.Param()
	case "max", "lte":
		ve.Message = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		ve.Params["max"] = fe.Param()
	default:
		ve.Message = fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}

	return ve
}
