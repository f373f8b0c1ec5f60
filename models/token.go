package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a verified JWT presented by a caller.
//
// Tokens are issued by the external identity service; this service only
// verifies the signature and issuer and reads the subject, which is the
// owner identity stored in [Form.CreatedBy].
type Token struct {
	// Token is the underlying JWT.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS form of the token.
	SignedString string `json:"-"`

	// OwnerID is the "sub" claim of the token.
	OwnerID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
