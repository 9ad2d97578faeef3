// Package guard gates protected commands on the local session.
//
// Nothing here is a trust decision. Token signatures are never checked; the
// backend's 401 is the real authorization boundary.
package guard

import (
	"time"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/and161185/atns-client/internal/gateway"
	"github.com/and161185/atns-client/internal/session"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what an unverified token claims about itself.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the token has no exp claim
}

// Inspect decodes the claims segment without verifying the signature.
func Inspect(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, err
	}
	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return TokenInfo{}, err
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// TokenExpired reports whether token looks expired at now. Parsing needs a
// well-formed three-part JWT, so a token whose header or payload segment does
// not decode counts as expired even when its exp lies in the future. Tokens
// without exp count as expired too.
func TokenExpired(token string, now time.Time) bool {
	info, err := Inspect(token)
	if err != nil || info.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(info.ExpiresAt)
}

// Guard checks the session before protected work runs.
type Guard struct {
	store     session.Manager
	nav       gateway.Navigator
	loginPath string
}

// New builds a Guard that redirects to gateway.LoginPath.
func New(store session.Manager, nav gateway.Navigator) *Guard {
	if nav == nil {
		nav = gateway.NavigatorFunc(func(string) {})
	}
	return &Guard{store: store, nav: nav, loginPath: gateway.LoginPath}
}

// Require passes when the session is authenticated or holds a token.
// Otherwise it navigates to the login path and returns errs.ErrUnauthorized.
func (g *Guard) Require() error {
	s := g.store.Get()
	if s.IsAuthenticated || s.BearerToken() != "" {
		return nil
	}
	g.nav.Navigate(g.loginPath)
	return errs.ErrUnauthorized
}

// LoginShortcut reports whether the stored token is present and not
// superficially expired, i.e. the login form can be skipped.
func (g *Guard) LoginShortcut(now time.Time) bool {
	tok := g.store.Get().BearerToken()
	return tok != "" && !TokenExpired(tok, now)
}
