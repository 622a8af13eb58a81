package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/colts18seth/jobly/internal/domain"
)

const credentialKey = "auth_credential"

type credentialCtxKey struct{}

// TokenVerifier decodes a bearer token into a Credential.
type TokenVerifier interface {
	Verify(token string) (domain.Credential, error)
}

// Authenticator attaches the caller's Credential to the request when a valid
// bearer token is present. It never rejects a request: a missing, malformed,
// badly signed or expired token simply leaves the request anonymous, and the
// route's gates decide what anonymous callers may do.
type Authenticator struct {
	tokens TokenVerifier
}

// NewAuthenticator constructs the middleware.
func NewAuthenticator(tokens TokenVerifier) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Handle is the fiber middleware.
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}
	cred, err := a.tokens.Verify(token)
	if err != nil {
		return c.Next()
	}

	c.Locals(credentialKey, cred)
	c.SetUserContext(WithCredential(c.UserContext(), cred))
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CredentialFromContext returns the Credential attached by the Authenticator.
func CredentialFromContext(c *fiber.Ctx) (domain.Credential, bool) {
	cred, ok := c.Locals(credentialKey).(domain.Credential)
	return cred, ok
}

// WithCredential stores cred in ctx for code below the HTTP layer.
func WithCredential(ctx context.Context, cred domain.Credential) context.Context {
	return context.WithValue(ctx, credentialCtxKey{}, cred)
}

// CredentialFrom extracts the Credential stored by WithCredential.
func CredentialFrom(ctx context.Context) (domain.Credential, bool) {
	cred, ok := ctx.Value(credentialCtxKey{}).(domain.Credential)
	return cred, ok
}
