package tokens

import (
	"time"
)

// ==============================================

// IdentityTokenClaims represents the JWT claims for an identity token.
// It contains standard JWT claims (exp, iat, iss, jti) plus the user's
// id, name, and email, and sits between the JSON representation in the
// token and the IdentityToken Go struct.
type IdentityTokenClaims struct {
	Expiration int64  `json:"exp"`
	IssuedAt   int64  `json:"iat"`
	Issuer     string `json:"iss"`
	TokenID    string `json:"jti"`
	UserID     int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

func (claims *IdentityTokenClaims) validate(verifier Verifier) error {
	now := time.Now()

	if time.Unix(claims.IssuedAt, 0).After(now) {
		return ErrTokenNotIssued()
	}

	if time.Unix(claims.Expiration, 0).Before(now) {
		return ErrTokenExpired()
	}

	if !verifier.ValidateDomain(claims.Issuer) {
		return ErrTokenInvalidIssuer()
	}

	return nil
}

// ==============================================

// IdentityToken is the signed, time-bounded assertion of who a caller is.
// It is issued at login and presented as a bearer credential on every
// protected request. The token id (jti) is unique per issuance so that a
// deny-list can revoke individual tokens before their natural expiry.
type IdentityToken struct {
	issuer     string
	issuedAt   time.Time
	expiration time.Time
	tokenID    string
	userID     int64
	name       string
	email      string
	encoded    string
}

func (t *IdentityToken) Issuer() string        { return t.issuer }
func (t *IdentityToken) IssuedAt() time.Time   { return t.issuedAt }
func (t *IdentityToken) Expiration() time.Time { return t.expiration }
func (t *IdentityToken) TokenID() string       { return t.tokenID }
func (t *IdentityToken) UserID() int64         { return t.userID }
func (t *IdentityToken) Name() string          { return t.name }
func (t *IdentityToken) Email() string         { return t.email }
func (t *IdentityToken) Encoded() string       { return t.encoded }

func (token *IdentityToken) Decode(encToken string, verifier Verifier) error {
	claims, err := decodeToken[*IdentityTokenClaims](encToken, verifier)
	if err != nil {
		return err
	}
	token.fromClaims(*claims, encToken)
	return nil
}

// DecodeContext is Decode plus the diagnostic context of a failure, for
// callers that want to log why a token was rejected without leaking that
// reason to the client.
func (token *IdentityToken) DecodeContext(
	encToken string,
	verifier Verifier,
) (
	string,
	error,
) {
	claims, err := decodeToken[*IdentityTokenClaims](encToken, verifier)
	if err != nil {
		return err.Context(), err
	}
	token.fromClaims(*claims, encToken)
	return "", nil
}

func (token *IdentityToken) intoClaims() *IdentityTokenClaims {
	claims := &IdentityTokenClaims{}
	claims.Issuer = token.issuer
	claims.IssuedAt = token.issuedAt.Unix()
	claims.Expiration = token.expiration.Unix()
	claims.TokenID = token.tokenID
	claims.UserID = token.userID
	claims.Name = token.name
	claims.Email = token.email
	return claims
}

func (token *IdentityToken) fromClaims(claims *IdentityTokenClaims, encToken string) {
	token.issuer = claims.Issuer
	token.issuedAt = time.Unix(claims.IssuedAt, 0)
	token.expiration = time.Unix(claims.Expiration, 0)
	token.tokenID = claims.TokenID
	token.userID = claims.UserID
	token.name = claims.Name
	token.email = claims.Email
	token.encoded = encToken
}
