package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fullstackdevx/fso-part4/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler renders every error as {"error": "..."}
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, echo.Map{"error": message})
		}
		if err != nil {
			log.Error("failed to write error response", slog.Any("error", err))
		}
	}
}

// repositoryError maps repository sentinels to HTTP errors
func repositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return echo.NewHTTPError(http.StatusBadRequest, "malformatted id")
	case errors.Is(err, repositories.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	case errors.Is(err, repositories.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, repositories.ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

// bindAndValidate decodes the request body into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	return c.Validate(req)
}
