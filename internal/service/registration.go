package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func (s *Service) Register(
	name string,
	email string,
	password string,
) (
	*User,
	error,
) {
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	// fast path; the store's uniqueness constraint is what actually
	// closes the race between concurrent registrations
	exists, err := s.identityStore.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check email: %v", ErrInternal, err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashPass, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordMode.Cost())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	id, err := s.identityStore.InsertIdentity(name, email, hashPass)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: failed to insert identity: %v", ErrInternal, err)
	}

	return &User{
		ID:    id,
		Name:  name,
		Email: email,
	}, nil
}
