package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ValidationError means the caller supplied data that violates a business rule.
// Recoverable by correcting the input; never retried automatically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// NotFoundError means the referenced entity does not exist or does not belong
// to the caller.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Message: msg}
}

// DependencyError means a collaborator lookup or the persistence layer failed.
type DependencyError struct {
	Message string
	Err     error
}

func (e *DependencyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func NewDependencyError(msg string, err error) error {
	return &DependencyError{Message: msg, Err: err}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFoundError(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error onto the wire: validation failures as 400,
// missing entities as 404, everything else as a dependency failure.
func RespondError(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		JSONError(c, http.StatusBadRequest, ve.Message, "")
		return
	}
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		JSONError(c, http.StatusNotFound, nfe.Message, "")
		return
	}
	var de *DependencyError
	if errors.As(err, &de) {
		JSONError(c, http.StatusBadGateway, de.Message, de.Error())
		return
	}
	JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
}
