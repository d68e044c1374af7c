// api/middleware/error_handler.go
package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/modesq/dynamic-form-fullstack-app/api/models"
	"github.com/modesq/dynamic-form-fullstack-app/internal/auth"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/storage"
)

// ErrorHandler creates a Gin middleware for centralized error handling.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// only the last attached error decides the response
		err := c.Errors.Last().Err
		customLog.Printf("[ErrorHandler] Detected error: %v | Type: %T", err, err)

		statusCode, userMessage := classify(err)

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, models.ErrorResponse{StatusCode: statusCode, Message: userMessage})
		} else {
			customLog.Warnf("[ErrorHandler] Response already written before handling error.")
		}
	}
}

func classify(err error) (int, string) {
	var (
		requestErr    *models.RequestError
		validationErr validator.ValidationErrors
		constraintErr *storage.ConstraintError
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &requestErr):
		return http.StatusBadRequest, requestErr.Message
	case errors.As(err, &validationErr):
		for _, fe := range validationErr {
			customLog.Printf("Validation Error: Field %s failed on %s", fe.Field(), fe.Tag())
		}
		return http.StatusBadRequest, validationMessage(validationErr[0])
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, "Invalid JSON request body"
	case errors.Is(err, domain.ErrInvalidFieldDefinition), errors.Is(err, domain.ErrUnknownFieldType):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, storage.ErrFormFieldNotFound):
		return http.StatusNotFound, "Form field not found"
	case errors.Is(err, storage.ErrUserNotFound):
		return http.StatusNotFound, "User not found"

	case errors.Is(err, storage.ErrEmailExists):
		return http.StatusConflict, "Email already exists"
	case errors.As(err, &constraintErr):
		return http.StatusConflict, constraintErr.Error()

	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, ErrAuthHeaderMissing), errors.Is(err, ErrAuthHeaderFormat):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "Authentication token has expired."
	case errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenClaimsInvalid),
		errors.Is(err, auth.ErrUnexpectedSigningMethod):
		return http.StatusUnauthorized, "Invalid or malformed authentication token."
	}

	customLog.Errorf("Unhandled error type: %T, Error: %v", err, err)
	return http.StatusInternalServerError, "An unexpected internal server error occurred."
}

// validationMessage renders one binding failure using the JSON field name.
func validationMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be no more than %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be no more than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
