package twofa

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ErrUnauthenticated is returned by identity resolvers when the request
// carries no usable identity.
var ErrUnauthenticated = errors.New("request is not authenticated")

// Identity is the authenticated principal a request acts on behalf of.
// Email is used as the account label in otpauth URIs; it may be empty.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// IdentityResolver extracts the authenticated identity from a request.
// The module does not perform authentication itself; sessions, tokens, or
// upstream proxies are the caller's concern.
type IdentityResolver func(r *http.Request) (Identity, error)
