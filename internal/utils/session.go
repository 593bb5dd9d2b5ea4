package utils // package utils provides helper functions for session tokens and cookies

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "crm_session"

// SessionToken represents a signed HS256 JWT bound to a user together with
// its expiry. The token travels in an HttpOnly cookie, so the browser holds
// the only copy and the server keeps no session table.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidSession is returned when a session token is missing required
// claims, is expired, or fails signature verification.
var ErrInvalidSession = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT identifying a logged-in
// user. The JWT carries the user id as subject (sub), the username as a
// custom claim, plus exp and iat.
func NewSessionToken(secret string, userID uint64, username string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a session JWT and returns the user id and
// username it identifies. Tokens signed with anything but HMAC are
// rejected so a forged header cannot downgrade verification.
func ParseSessionToken(secret, raw string) (uint64, string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidSession
	}
	sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
	if !ok || sub <= 0 {
		return 0, "", ErrInvalidSession
	}
	username, _ := claims["username"].(string)
	return uint64(sub), username, nil
}

// NewSessionCookie wraps a signed session token in an HttpOnly cookie.
func NewSessionCookie(t SessionToken) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    t.Token,
		Path:     "/",
		Expires:  t.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie returns a cookie that instructs the browser to drop
// the session immediately. Logout always succeeds with this regardless of
// whether the presented token was valid.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
