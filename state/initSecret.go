package state

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// InitSecret loads the RSA key pair used to sign and verify access tokens.
// The chat layer only ever verifies; signing belongs to the auth service but
// the private key is kept loaded for local token issuance in development.
func InitSecret() (*JwtSecret, error) {
	privKeyBytes, err := os.ReadFile("private.pem")
	if err != nil {
		return nil, err
	}

	pubKeyBytes, err := os.ReadFile("public.pem")
	if err != nil {
		return nil, err
	}

	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	log.Info().Msg("JWT secret initialized successfully")
	return &JwtSecret{
		Private: privKey,
		Public:  pubKey,
	}, nil
}
