package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the browser cookie carrying the signed session id.
const CookieName = "campus_session"

type sidClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// mintCookieValue signs the session id so a tampered cookie never reaches
// the store.
func mintCookieValue(secret, sid string, ttl time.Duration) (string, error) {
	claims := sidClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseCookieValue(secret, value string) (string, error) {
	var claims sidClaims
	tok, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid || claims.SID == "" {
		return "", fmt.Errorf("invalid session cookie")
	}
	return claims.SID, nil
}

func newCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, //set true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
