package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

const invalidDataMsg = "invalid request data"

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		body := echo.Map{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			body["error"] = origErr.Message
		case validator.ValidationErrors:
			details := make([]core.FieldError, 0, len(origErr))
			for _, vErr := range origErr {
				details = append(details, core.FieldError{Field: vErr.Field(), Error: vErr.Translate(translator)})
			}
			code = http.StatusBadRequest
			body["error"] = invalidDataMsg
			body["details"] = details
		case *core.ValidationError:
			code = http.StatusBadRequest
			body["error"] = origErr.Error()
			if len(origErr.Fields) > 0 {
				body["details"] = origErr.Fields
			}
		case *core.NotFoundError:
			code = http.StatusNotFound
			body["error"] = origErr.Error()
		default:
			if origErr == analytics.ErrNotFound {
				code = http.StatusNotFound
				body["error"] = http.StatusText(code)
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			body["error"] = msg
			logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
				"method": ctx.Request().Method,
				"path":   ctx.Request().URL.Path,
			})

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
