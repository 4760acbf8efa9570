//go:build unit

package api_test

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const bearer = "bearer-token"

// fakeAuth stands in for the JWT middleware: any Authorization header authenticates as userID.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
