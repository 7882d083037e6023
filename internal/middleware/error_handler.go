package middleware

import (
	"fmt"
	"net/http"

	"cpsGrowth/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders uncaught errors as the shared JSON error shape.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprintf("%v", he.Message)
	}

	logger.Error("HTTP error", err)

	if !c.Response().Committed {
		_ = c.JSON(code, map[string]string{"message": message})
	}
}
