package tokens

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Server implements both Issuer and Verifier interfaces for the taskpad
// server. It holds the private signing key for issuing tokens and the
// corresponding public key for verification. Create a Server instance
// using InitServer.
type Server struct {
	signingKey      *ecdsa.PrivateKey
	verificationKey *ecdsa.PublicKey
	issuerDomain    string
}

//
// Issuer interface

func (server *Server) SignHash(hash []byte) (string, error) {
	r, s, err := ecdsa.Sign(rand.Reader, server.signingKey, hash[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %v", err)
	}
	encSignature, err := encodeSignature(r, s)
	if err != nil {
		return "", fmt.Errorf("failed to encode signature: %v", err)
	}
	return encSignature, nil
}

func (server *Server) IssueIdentityToken(
	id int64,
	name string,
	email string,
	lifetime time.Duration,
) (*IdentityToken, error) {

	now := time.Now()
	exp := now.Add(lifetime)
	token := &IdentityToken{
		issuer:     server.issuerDomain,
		issuedAt:   now,
		expiration: exp,
		tokenID:    uuid.NewString(),
		userID:     id,
		name:       name,
		email:      email,
	}

	claims := token.intoClaims()
	encToken, err := encodeToken(claims, server)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity token: %v", err)
	}
	token.encoded = encToken

	return token, nil
}

//
// Verifier interface

func (server *Server) VerifySignature(
	encHeader string,
	encClaims string,
	encSignature string,
) error {
	return verifySignature(
		encHeader,
		encClaims,
		encSignature,
		server.verificationKey,
	)
}

func (server *Server) ValidateDomain(issuerDomain string) bool {
	return issuerDomain == server.issuerDomain
}
