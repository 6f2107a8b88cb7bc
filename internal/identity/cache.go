package identity

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew re-acquires tokens slightly before their actual expiry so an
// in-flight request never carries a token that dies mid-call.
const expirySkew = 2 * time.Minute

// Caching wraps a TokenProvider and reuses the delegate's token until it is
// close to expiry. Expiry is read from the JWT "exp" claim without signature
// verification - the remote services verify, we only schedule.
type Caching struct {
	delegate TokenProvider

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewCaching(delegate TokenProvider) *Caching {
	return &Caching{
		delegate: delegate,
		now:      time.Now,
	}
}

func (c *Caching) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt.Add(-expirySkew)) {
		return c.token, nil
	}

	token, err := c.delegate.Token(ctx)
	if err != nil {
		c.token = ""
		return "", err
	}

	c.token = token
	c.expiresAt = tokenExpiry(token, c.now())
	return token, nil
}

// tokenExpiry extracts the exp claim. Opaque (non-JWT) tokens get a short
// fixed lifetime so they are still re-read regularly.
func tokenExpiry(token string, now time.Time) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return now.Add(5 * time.Minute)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return now.Add(5 * time.Minute)
	}
	return exp.Time
}
