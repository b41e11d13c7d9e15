package response

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "freelancebid/pkg/errors"
	"freelancebid/pkg/logger"
)

// ErrorBody is the payload of every non-2xx response. Clients read Message
// for display and Code to decide how to react.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// MessageBody is a plain acknowledgement.
type MessageBody struct {
	Message string `json:"message"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Path(), appErr.Unwrap())
		}
		return c.JSON(appErr.Status, ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, ErrorBody{
			Code:    apperrors.CodeBadRequest,
			Message: "Invalid request payload",
		})
	}

	logger.Error("%s %s: unexpected error: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorBody{
		Code:    apperrors.CodeInternal,
		Message: "An unexpected error occurred",
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := err.Field()
		param := err.Param()

		var message string
		switch err.Tag() {
		case "required":
			message = field + " is required"
		case "trimmedmin":
			message = field + " must be at least " + param + " characters"
		case "min":
			message = field + " must be at least " + param + " characters"
		case "max":
			message = field + " must be at most " + param + " characters"
		case "oneof":
			message = field + " must be one of: " + param
		default:
			message = field + " is invalid"
		}

		return c.JSON(http.StatusBadRequest, ErrorBody{
			Code:    apperrors.CodeValidation,
			Message: message,
		})
	}

	return c.JSON(http.StatusBadRequest, ErrorBody{
		Code:    apperrors.CodeValidation,
		Message: "Invalid input data",
	})
}
