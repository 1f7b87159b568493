package api

import (
	"context"
	"net/http"
	"strings"

	"git.sr.ht/~jakintosh/taskpad/internal/tokens"
)

type contextKey int

const identityContextKey contextKey = iota

// RequireAuth is the single authorization perimeter. It extracts the
// bearer credential, verifies it, consults the deny-list, and attaches
// the resolved identity to the request context. A missing credential is
// 401; every kind of invalid credential collapses to 403 "Invalid token"
// so the response never reveals why verification failed.
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeMessage(w, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		scheme, tokenStr, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		token := &tokens.IdentityToken{}
		errContext, err := token.DecodeContext(tokenStr, a.verifier)
		if err != nil {
			logApiErr(r, errContext)
			writeMessage(w, http.StatusForbidden, "Invalid token")
			return
		}

		if a.denylist != nil && a.denylist.Revoked(token.TokenID()) {
			logApiErr(r, "token revoked")
			writeMessage(w, http.StatusForbidden, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFrom returns the identity attached by RequireAuth. Handlers
// behind the guard can rely on it being present.
func identityFrom(r *http.Request) (*tokens.IdentityToken, bool) {
	token, ok := r.Context().Value(identityContextKey).(*tokens.IdentityToken)
	return token, ok
}
