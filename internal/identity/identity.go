package identity

import (
	"context"
	"errors"
	"os"
)

// ErrAuthRequired signals that no usable token could be acquired. Jobs and
// navigation calls surface this immediately instead of retrying, so the UI
// can trigger its interactive login flow exactly once.
var ErrAuthRequired = errors.New("identity: authentication required")

// TokenProvider supplies a bearer token for one outbound call. The
// interactive silent/popup acquisition lives in the external identity
// collaborator; implementations here only hand out already-delegated tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Static returns the same token for every call. Used in tests and for
// service-account style deployments.
type Static string

func (s Static) Token(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrAuthRequired
	}
	return string(s), nil
}

// Env reads the token from an environment variable on every call, so a
// sidecar refresher can rotate it without restarting the service.
type Env string

func (e Env) Token(_ context.Context) (string, error) {
	token := os.Getenv(string(e))
	if token == "" {
		return "", ErrAuthRequired
	}
	return token, nil
}
