// Package service implements the business logic layer for the taskpad
// server. It handles user registration, authentication, token issuance,
// and owner-scoped task operations.
package service

import (
	"errors"
	"log"
	"os"
	"time"

	"git.sr.ht/~jakintosh/taskpad/internal/tokens"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal error")
)

// tokenLifetime bounds the blast radius of a leaked token; revocation
// before natural expiry goes through the deny-list instead.
const tokenLifetime = time.Hour

// PasswordMode controls bcrypt cost for password hashing.
// Use PasswordModeProduction for real deployments and PasswordModeTesting only in tests.
type PasswordMode int

const (
	// PasswordModeProduction uses bcrypt.DefaultCost (10) for secure password hashing.
	PasswordModeProduction PasswordMode = iota
	// PasswordModeTesting uses bcrypt.MinCost (4) for fast test execution.
	// WARNING: This mode will panic if used outside of go test.
	PasswordModeTesting
)

// Cost returns the bcrypt cost for this mode.
// Panics if PasswordModeTesting is used outside of a test environment.
func (m PasswordMode) Cost() int {
	switch m {
	case PasswordModeTesting:
		// Safety check: only allow testing mode during go test
		for _, arg := range os.Args {
			if len(arg) > 5 && arg[:6] == "-test." {
				goto allowed
			}
		}
		panic("service: PasswordModeTesting used outside of test environment")
	allowed:
		log.Println("WARNING: Using insecure password hashing (testing mode)")
		return bcrypt.MinCost
	default:
		return bcrypt.DefaultCost
	}
}

// Service coordinates registration, authentication, and task operations.
// It depends on storage interfaces (IdentityStore, TaskStore) and
// delegates to them for persistence.
type Service struct {
	identityStore IdentityStore
	taskStore     TaskStore
	tokenIssuer   tokens.Issuer
	passwordMode  PasswordMode
}

func New(
	identityStore IdentityStore,
	taskStore TaskStore,
	issuer tokens.Issuer,
	passwordMode PasswordMode,
) *Service {
	return &Service{
		identityStore: identityStore,
		taskStore:     taskStore,
		tokenIssuer:   issuer,
		passwordMode:  passwordMode,
	}
}
