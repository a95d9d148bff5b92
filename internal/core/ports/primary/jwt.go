package primary

import (
	"context"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

// TokenVerifier checks session tokens issued by the auth service
type TokenVerifier interface {
	// VerifyTokenHMAC validates signature and expiry and returns the caller identity
	VerifyTokenHMAC(ctx context.Context, token string) (domain.AuthPayload, error)
}
