package middleware

import (
	"errors"
	"net/http"
	"strings"

	"studyRecommender/pkg/logger"

	jsonres "studyRecommender/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers, mostly echo's own
// routing and binding errors, in the common error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	} else {
		logger.Error("Unhandled error", "path", c.Path(), "error", err)
	}

	status := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, jsonres.Error(status, message, nil))
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", "error", writeErr)
	}
}
