package websocket

import (
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abedalrahmansd/SSociety-API/internal/utils"
)

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// JWTWebSocketAuth verifies the bearer token presented at handshake time and
// yields the identity the connection will carry. Signature and expiry only;
// token refresh happens over HTTP before reconnecting.
func JWTWebSocketAuth(publicKey *rsa.PublicKey) AuthenticatorFunc {
	return func(r *http.Request) (*Identity, error) {
		token := getTokenFromRequest(r)
		if token == "" {
			return nil, &AuthError{Message: "Authentication token is required"}
		}

		claims, err := utils.ParseAndVerifySign(token, publicKey)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, &AuthError{Message: "token expired, please refresh and reconnect"}
			}
			return nil, &AuthError{Message: "invalid token"}
		}

		return &Identity{ID: claims.ID, Email: claims.Email}, nil
	}
}

func getTokenFromRequest(r *http.Request) string {
	// Option 1: Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Option 2: Query parameter
	token := r.URL.Query().Get("token")
	if token != "" {
		return token
	}

	// Option 3: Cookie
	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
