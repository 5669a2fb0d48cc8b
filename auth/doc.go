// Package auth verifies console sessions.
//
// A SessionVerifier authenticates an inbound HTTP request. The JWT
// implementation reads a token from the Authorization header or, failing
// that, from the session cookie, and checks it with golang-jwt/jwt/v5.
//
//	v, err := auth.New(cfg)
//	if v != nil {
//	    router.Use(middleware.GinWrap(middleware.Auth(v)))
//	}
//
// New returns a nil verifier when authentication is disabled; callers treat
// that as an open endpoint.
package auth
