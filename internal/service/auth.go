package service

import (
	"database/sql"
	"errors"
	"fmt"

	"git.sr.ht/~jakintosh/taskpad/internal/tokens"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates the email/password pair and issues a one-hour
// identity token. An unknown email and a wrong password both collapse to
// ErrInvalidCredentials so the response never reveals which half of the
// credential was wrong.
func (s *Service) Login(
	email string,
	password string,
) (
	*tokens.IdentityToken,
	*User,
	error,
) {
	user, hash, err := s.identityStore.GetIdentityByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("%w: failed to retrieve secret: %v", ErrInternal, err)
	}

	err = bcrypt.CompareHashAndPassword(hash, []byte(password))
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.IssueIdentityToken(
		user.ID,
		user.Name,
		user.Email,
		tokenLifetime,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to issue identity token: %v", ErrInternal, err)
	}

	return token, user, nil
}
