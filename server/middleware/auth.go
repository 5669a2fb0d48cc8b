package middleware

import (
	"net/http"

	"github.com/kbukum/flowsynth/auth"
	apperrors "github.com/kbukum/flowsynth/errors"
)

// MsgUnauthorized is the message of every 401 written by Auth.
const MsgUnauthorized = "Unauthorized"

// Auth rejects requests the verifier does not accept with 401 and stores
// the session in the request context otherwise. A nil verifier lets every
// request through.
func Auth(verifier auth.SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := verifier.Verify(r)
			if err != nil || session == nil {
				writeError(w, apperrors.Unauthorized(MsgUnauthorized))
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}
