package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/httperr"
)

// RequireStore answers 503 on every data route when the database never came
// up. The process itself stays alive and listening.
func RequireStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, httperr.HTTPError{
				Code:    "store_unavailable",
				Message: "database is not available",
			})
			return
		}
		c.Next()
	}
}
