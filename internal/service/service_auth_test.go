package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(config.App{TokenSignKey: "key", TokenIssuer: "iss", TokenDuration: time.Hour}, logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, "alice")
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.OwnerID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	issuer := NewAuthService(config.App{TokenSignKey: "other", TokenIssuer: "iss", TokenDuration: time.Hour}, logger.Nop())
	verifier := NewAuthService(config.App{TokenSignKey: "key", TokenIssuer: "iss", TokenDuration: time.Hour}, logger.Nop())

	token, err := issuer.CreateToken(context.Background(), "alice")
	require.NoError(t, err)

	_, err = verifier.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	_, err = verifier.ParseToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CreateToken_MissingKey(t *testing.T) {
	svc := NewAuthService(config.App{TokenIssuer: "iss", TokenDuration: time.Hour}, logger.Nop())

	_, err := svc.CreateToken(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
