package backend

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshLeeway refreshes slightly early so a token does not expire
// between the check and the authorized call that follows it.
const refreshLeeway = 30 * time.Second

// tokenNeedsRefresh decodes the access token's claims without verifying
// the signature (the remote service is the authority on validity; we
// only need the expiry to decide refresh timing). An undecodable token
// is treated as expired.
func tokenNeedsRefresh(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !now.Before(exp.Time.Add(-refreshLeeway))
}
