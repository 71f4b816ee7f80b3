package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetcal/utils"
)

// CSRFMiddleware implements double-submit cookie protection. Safe methods
// receive the csrftoken cookie; mutating requests must echo it back in the
// X-CSRFToken header.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if _, err := c.Cookie(utils.CSRFCookieName); err != nil {
				token, genErr := newCSRFToken()
				if genErr == nil {
					c.SetCookie(utils.CSRFCookieName, token, 0, "/", "", false, false)
				}
			}
			c.Next()
			return
		}

		cookie, err := c.Cookie(utils.CSRFCookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status": "error",
				"detail": "CSRF cookie not set.",
			})
			return
		}
		header := c.GetHeader(utils.CSRFHeaderName)
		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status": "error",
				"detail": "CSRF token missing or incorrect.",
			})
			return
		}
		c.Next()
	}
}

func newCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
