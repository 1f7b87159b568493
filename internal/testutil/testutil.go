// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"git.sr.ht/~jakintosh/taskpad/internal/api"
	"git.sr.ht/~jakintosh/taskpad/internal/database"
	"git.sr.ht/~jakintosh/taskpad/internal/revocation"
	"git.sr.ht/~jakintosh/taskpad/internal/service"
	"git.sr.ht/~jakintosh/taskpad/internal/tokens"
)

var (
	sharedSigningKey     *ecdsa.PrivateKey
	sharedSigningKeyOnce sync.Once
)

// getSharedSigningKey returns a cached ECDSA signing key for tests.
// This avoids the overhead of generating a new key for each test.
func getSharedSigningKey() *ecdsa.PrivateKey {
	sharedSigningKeyOnce.Do(func() {
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			panic("failed to generate shared signing key: " + err.Error())
		}
		sharedSigningKey = key
	})
	return sharedSigningKey
}

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	DB            *database.SQLiteStore
	Service       *service.Service
	Router        http.Handler
	TokenIssuer   tokens.Issuer
	TokenVerifier tokens.Verifier
	Denylist      *revocation.Denylist
}

// SetupTestEnv creates an isolated test environment with a throwaway
// SQLite database
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	t.Helper()

	// each test gets its own database file in a temp dir
	db := database.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))

	// use cached signing key (generated once across all tests)
	signingKey := getSharedSigningKey()

	// create token issuer/verifier
	issuer, verifier := tokens.InitServer(signingKey, "test.taskpad.local")

	// create service
	svc := service.New(
		db.IdentityStore(),
		db.TaskStore(),
		issuer,
		service.PasswordModeTesting,
	)

	// setup cleanup
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &TestEnv{
		DB:            db,
		Service:       svc,
		TokenIssuer:   issuer,
		TokenVerifier: verifier,
	}
}

// SetupTestEnvWithRouter creates TestEnv and configures the API router
func SetupTestEnvWithRouter(
	t *testing.T,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	a := api.New(env.Service, env.TokenVerifier, env.Denylist, "")
	env.Router = a.Router()
	return env
}

// SetupTestEnvWithDenylist creates TestEnv with a deny-list backed by the
// given file, and a router that consults it
func SetupTestEnvWithDenylist(
	t *testing.T,
	denylistPath string,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)

	denylist, err := revocation.NewDenylist(denylistPath)
	if err != nil {
		t.Fatalf("failed to create deny-list: %v", err)
	}
	env.Denylist = denylist

	a := api.New(env.Service, env.TokenVerifier, env.Denylist, "")
	env.Router = a.Router()
	return env
}

// RegisterTestUser creates a test user and returns its public shape
func (env *TestEnv) RegisterTestUser(
	t *testing.T,
	name string,
	email string,
	password string,
) *service.User {
	t.Helper()
	user, err := env.Service.Register(name, email, password)
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return user
}

// LoginTestUser logs in a registered test user and returns the encoded token
func (env *TestEnv) LoginTestUser(
	t *testing.T,
	email string,
	password string,
) (string, *service.User) {
	t.Helper()
	token, user, err := env.Service.Login(email, password)
	if err != nil {
		t.Fatalf("failed to login test user: %v", err)
	}
	return token.Encoded(), user
}

// DecodeToken decodes an encoded identity token against the verifier
func DecodeToken(
	encoded string,
	verifier tokens.Verifier,
) (*tokens.IdentityToken, error) {
	token := &tokens.IdentityToken{}
	if err := token.Decode(encoded, verifier); err != nil {
		return nil, err
	}
	return token, nil
}

// IssueTestToken creates an identity token for testing
func (env *TestEnv) IssueTestToken(
	t *testing.T,
	id int64,
	name string,
	email string,
) *tokens.IdentityToken {
	t.Helper()
	token, err := env.TokenIssuer.IssueIdentityToken(id, name, email, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}
