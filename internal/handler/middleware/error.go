package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 12

// ErrorHandler logs server-side failures with their stack and writes a response
// for handlers that recorded an error without writing one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()

		resp, public := last.Meta.(httperr.Response)
		if !public || resp.Status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"request_id", GetRequestID(c),
				"route", c.FullPath(),
				"error", last.Err.Error(),
				"stack", errs.ExtractStackLines(last.Err, stackLines))
		}

		if c.Writer.Written() {
			return
		}
		if public && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}
		c.JSON(http.StatusInternalServerError, internalError())
	}
}

// CustomRecovery turns a panic anywhere below it into a 500 envelope.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			err := errs.New(fmt.Sprintf("panic: %v", rec))
			slog.Error("recovered from panic",
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", errs.ExtractStackLines(err, stackLines))

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, internalError())
			}
			c.Abort()
		}()
		c.Next()
	}
}

func internalError() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "internal server error"
	resp.Error.Code = string(errs.KindInternal)
	return resp
}
