package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/fintrack/pkg/auth"
	"github.com/artem13815/fintrack/pkg/logging"
)

// statusOf maps a domain error to its HTTP status. ok is false for errors
// the domain does not know about.
func statusOf(err error) (status int, ok bool) {
	var verr auth.ErrValidation
	switch {
	case errors.As(err, &verr), errors.Is(err, auth.ErrUserAlreadyExists):
		return http.StatusBadRequest, true
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, true
	case errors.Is(err, auth.ErrNoPendingRequest),
		errors.Is(err, auth.ErrInvalidCode),
		errors.Is(err, auth.ErrCodeExpired):
		return http.StatusBadRequest, true
	case errors.Is(err, auth.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

// DomainError renders a known domain error with its status and message.
// Anything else is handed back to Fiber so ErrorHandler logs it as a 500.
func DomainError(c *fiber.Ctx, err error) error {
	if status, ok := statusOf(err); ok {
		return Error(c, status, err.Error())
	}
	return err
}

// ErrorHandler is the app-wide fiber.ErrorHandler. Internal error text goes
// to the log, and to the body as details only when exposeDetails is set.
func ErrorHandler(log logging.Logger, exposeDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Error(c, fe.Code, fe.Message)
		}
		if status, ok := statusOf(err); ok {
			return Error(c, status, err.Error())
		}

		log.Error(c.UserContext(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err,
		)
		resp := ErrorResponse{Message: "internal server error"}
		if exposeDetails {
			resp.Details = err.Error()
		}
		return JSON(c, http.StatusInternalServerError, resp)
	}
}
