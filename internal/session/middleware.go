package session

import (
	"context"
	"net/http"

	"MiniCart/pkg/kit"
)

type ctxKey string

const sessionKey ctxKey = "session_id"

func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// Require rejects requests without a valid session bearer token.
func Require(tm *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := kit.BearerToken(r)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}

			claims, err := tm.Parse(tok)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), claims.SessionID)))
		})
	}
}
