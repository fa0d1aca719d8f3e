package common

import "time"

// Cookie names shared between the client session and the token service.
const (
	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
)

// Token lifetimes. The access token is short-lived and script-readable,
// the refresh token long-lived and attach-only.
const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Opaque token prefixes. Tokens are "<prefix>_<unixmilli>_<randhex>" strings,
// not verified signatures.
const (
	AccessTokenPrefix  = "access"
	RefreshTokenPrefix = "refresh"
)
