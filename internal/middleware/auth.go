package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parlourbd/parlour-server/internal/httperr"
	"github.com/parlourbd/parlour-server/internal/store"
	"github.com/parlourbd/parlour-server/internal/token"
)

const (
	ContextEmail  = "claimsEmail"
	ContextClaims = "claims"
)

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    "unauthorized_access",
		Message: "Unauthorized access",
	})
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, httperr.HTTPError{
		Code:    "forbidden_access",
		Message: "Forbidden access",
	})
}

// Authenticate requires a Bearer token. A missing header is 401 and is never
// verified; a header that is present but malformed, forged, or expired is 403.
func Authenticate(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			forbidden(c)
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			forbidden(c)
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RequireSelf matches the email query parameter against the authenticated
// claims. Fails closed when Authenticate never ran.
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsEmail := c.GetString(ContextEmail)
		if claimsEmail == "" || c.Query("email") != claimsEmail {
			forbidden(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin checks the stored role of the authenticated email. Fails
// closed when Authenticate never ran.
func RequireAdmin(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsEmail := c.GetString(ContextEmail)
		if claimsEmail == "" {
			forbidden(c)
			return
		}

		isAdmin, err := users.IsAdmin(c.Request.Context(), claimsEmail)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.HTTPError{
				Code:    "admin_lookup_failed",
				Message: "could not verify role",
			})
			return
		}
		if !isAdmin {
			forbidden(c)
			return
		}

		c.Next()
	}
}
