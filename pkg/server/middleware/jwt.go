package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// APIClaims are the claims carried by Gatehouse API tokens
type APIClaims struct {
	AccountID uint   `json:"account_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// TokenAuthenticator is middleware that validates API tokens
type TokenAuthenticator struct {
	Key []byte
	TTL time.Duration
}

// NewTokenAuthenticator creates a new API token authenticator
func NewTokenAuthenticator(key []byte, ttl time.Duration) *TokenAuthenticator {
	return &TokenAuthenticator{Key: key, TTL: ttl}
}

// IssueToken signs a token for the given account
func (t *TokenAuthenticator) IssueToken(accountID uint, name string) (string, error) {
	now := time.Now()
	claims := APIClaims{
		AccountID: accountID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gatehouse",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Key)
}

// ParseToken validates a token string and returns its claims
func (t *TokenAuthenticator) ParseToken(tokenStr string) (*APIClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &APIClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*APIClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	return claims, nil
}

// Middleware returns an HTTP middleware that validates Bearer tokens
func (t *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := t.ParseToken(tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid authorization token"))
			return
		}

		next.ServeHTTP(w, SetAPIIdentity(r, claims))
	})
}

type apiIdentityKey struct{}

// SetAPIIdentity attaches API token claims to the request context
func SetAPIIdentity(r *http.Request, claims *APIClaims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), apiIdentityKey{}, claims))
}

// GetAPIIdentity retrieves API token claims attached by the middleware
func GetAPIIdentity(r *http.Request) (*APIClaims, bool) {
	claims, ok := r.Context().Value(apiIdentityKey{}).(*APIClaims)
	return claims, ok
}
