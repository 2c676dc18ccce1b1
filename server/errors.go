package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
)

// newHTTPErrorHandler returns a custom echo.HTTPErrorHandler: HTTP errors keep
// their status, anything else is logged and reported as a 500.
func newHTTPErrorHandler(logger echo.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			logger.Errorj(log.JSON{
				"error": err.Error(),
				"path":  ctx.Request().URL.Path,
				"query": ctx.Request().URL.RawQuery,
			})
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				logger.Error(err)
			}
		}
	}
}
