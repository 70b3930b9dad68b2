package apperror

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EchoErrorHandler renders application errors as a stable JSON envelope:
// {"error": {"code": ..., "message": ...}}. Unexpected failures are logged
// with full context and surfaced as a generic 500; internals are included in
// the response only outside production.
func EchoErrorHandler(log *zap.Logger, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *Error
		if !errors.As(err, &appErr) {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				// Echo's own errors (404 route miss, 405, body too large).
				msg := http.StatusText(httpErr.Code)
				if s, ok := httpErr.Message.(string); ok {
					msg = s
				}
				appErr = New("HTTP_ERROR", httpErr.Code, msg)
			} else {
				appErr = ErrInternal.WithErr(err)
			}
		}

		if appErr.Status >= http.StatusInternalServerError {
			log.Error("Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
		}

		body := echo.Map{"code": appErr.Code, "message": appErr.Message}
		if env != "production" && appErr.Err != nil {
			body["detail"] = appErr.Err.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(appErr.Status)
			return
		}
		_ = c.JSON(appErr.Status, echo.Map{"error": body})
	}
}
