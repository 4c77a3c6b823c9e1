package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/adanyl0v/task-tracker/internal/models"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errInvalidTaskID      = errors.New("invalid task id")
	errTaskNotFound       = errors.New("task not found")
)

type apiError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	body := gin.H{"error": err.Message}
	if len(err.Fields) > 0 {
		body["fields"] = err.Fields
	}
	c.AbortWithStatusJSON(err.Code, body)
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newUnprocessableEntityError(message string) apiError {
	return newAPIError(http.StatusUnprocessableEntity, message)
}

// newValidationError reports which fields failed binding.
func newValidationError(message string, err error) apiError {
	apiErr := newUnprocessableEntityError(message)
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
	case errors.Is(err, models.ErrInvalidStatus):
		fields["status"] = "must be one of to_do, in_progress, completed"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fields[typeErr.Field] = "must be a " + typeErr.Type.String()
	}

	if len(fields) > 0 {
		apiErr.Fields = fields
	}
	return apiErr
}
