package api

import (
	"errors"
	"net/http"
	"strconv"

	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errMissingUser     = errors.New("user id missing from context")
	errInvalidApproved = errors.New("approved must be true or false")
)

// requireUserID aborts with 401 when auth middleware did not run.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUser, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func approvedParam(c *gin.Context) (bool, bool) {
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidApproved, errInvalidApproved.Error(), nil)
		return false, false
	}
	return approved, true
}
