package main

import (
	"fmt"
	"log"
	"net/http"

	"git.sr.ht/~jakintosh/taskpad/internal/api"
	"git.sr.ht/~jakintosh/taskpad/internal/config"
	"git.sr.ht/~jakintosh/taskpad/internal/database"
	"git.sr.ht/~jakintosh/taskpad/internal/revocation"
	"git.sr.ht/~jakintosh/taskpad/internal/service"
	"git.sr.ht/~jakintosh/taskpad/internal/tokens"
)

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v\n", err)
	}

	signingKey, err := loadOrCreateSigningKey(cfg.SigningKeyPath)
	if err != nil {
		log.Fatalf("failed to load signing key: %v\n", err)
	}
	issuer, verifier := tokens.InitServer(signingKey, cfg.IssuerDomain)

	store := database.NewSQLiteStore(cfg.DBPath)
	defer store.Close()

	svc := service.New(
		store.IdentityStore(),
		store.TaskStore(),
		issuer,
		service.PasswordModeProduction,
	)

	var denylist *revocation.Denylist
	if cfg.DenylistPath != "" {
		denylist, err = revocation.NewDenylist(cfg.DenylistPath)
		if err != nil {
			log.Fatalf("failed to start deny-list watcher: %v\n", err)
		}
	}

	a := api.New(svc, verifier, denylist, cfg.CORSOrigin)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server is running on http://localhost%s\n", addr)
	log.Fatal(http.ListenAndServe(addr, a.Router()))
}
