package crypto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/fcv-2025.net/submission-judge/internal/config"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

var _ primary.TokenVerifier = (*JWTServiceImpl)(nil)

var (
	ErrInvalidToken = fmt.Errorf("invalid token")
	ErrMissingUser  = fmt.Errorf("token has no user id")
)

type JWTServiceImpl struct {
	HMACSecretKey string
}

func NewJWTService(jwtConfig *config.JwtConfig) *JWTServiceImpl {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
	}
}

// GenerateTokenHMAC signs claims with the shared secret. Issuing is done by the auth service; this is used by tooling and tests.
func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}

	if _, exists := claims["exp"]; !exists {
		claims["exp"] = time.Now().Add(time.Hour * 1).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, jwt.MapClaims(claims))
	return tok.SignedString([]byte(J.HMACSecretKey))
}

// VerifyTokenHMAC checks signature and expiry and extracts the caller identity.
// The user id is read from "sub", falling back to "_id" and "id".
func (J JWTServiceImpl) VerifyTokenHMAC(ctx context.Context, token string) (domain.AuthPayload, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	})
	if err != nil {
		return domain.AuthPayload{}, errors.Join(ErrInvalidToken, err)
	}
	if !parsedToken.Valid {
		return domain.AuthPayload{}, ErrInvalidToken
	}

	payload := domain.AuthPayload{
		UserID:   firstString(claims, "sub", "_id", "id"),
		Username: firstString(claims, "username", "firstName"),
		Email:    firstString(claims, "email", "emailId"),
	}
	if payload.UserID == "" {
		return domain.AuthPayload{}, ErrMissingUser
	}
	return payload, nil
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
