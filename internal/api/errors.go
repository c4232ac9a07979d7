package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/service"
)

func init() {
	// Report validation failures under the JSON field names clients send.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError writes the status and body matching err's kind
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		verr *service.ValidationError
		aerr *service.AuthorizationError
		nerr *service.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &aerr):
		c.JSON(http.StatusForbidden, gin.H{"error": aerr.Message})
	case errors.As(err, &nerr):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	default:
		_ = c.Error(err)
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindingError converts a gin binding failure into a field-keyed validation error
func bindingError(err error) *service.ValidationError {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		syntax  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		out := &service.ValidationError{Message: "validation failed"}
		for _, fe := range verrs {
			out.Add(fe.Field(), fieldMessage(fe))
		}
		return out
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return service.NewValidationError("Invalid request body.")
		}
		return service.NewFieldError(field, fmt.Sprintf("Incorrect type. Expected %s.", typeErr.Type.String()))
	case errors.As(err, &syntax):
		return service.NewValidationError(fmt.Sprintf("JSON parse error - %s", syntax.Error()))
	default:
		return service.NewValidationError("Invalid request body.")
	}
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}
