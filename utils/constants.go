// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// ResetSessionPrefix is the prefix used for password-reset session keys.
const ResetSessionPrefix = "resetSession:"

// ResetSessionTTL is how long a password-reset token stays redeemable.
const ResetSessionTTL = 15 * time.Minute

// CSRFCookieName is the cookie the server issues and the client echoes in
// the X-CSRFToken header on mutating requests.
const CSRFCookieName = "csrftoken"

// CSRFHeaderName is the request header carrying the CSRF token.
const CSRFHeaderName = "X-CSRFToken"
