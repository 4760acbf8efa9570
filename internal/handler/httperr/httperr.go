package httperr

import (
	"net/http"

	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = codeOf(status)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort derives status and message from the error kind.
// Errors without a kind become a generic 500.
func Abort(c *gin.Context, err error) {
	AbortWithError(c, StatusOf(errs.KindOf(err)), err, errs.PublicMessage(err), nil)
}

func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindBadRequest:
		return http.StatusBadRequest
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func codeOf(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(errs.KindNotFound)
	case http.StatusBadRequest:
		return string(errs.KindBadRequest)
	case http.StatusForbidden:
		return string(errs.KindForbidden)
	case http.StatusConflict:
		return string(errs.KindConflict)
	case http.StatusUnauthorized:
		return string(errs.KindUnauthorized)
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		return string(errs.KindInternal)
	}
}
