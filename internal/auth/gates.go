package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

const unauthorizedMessage = "Unauthorized"

// RequireAuthenticated admits any request carrying a Credential.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CredentialFromContext(c); !ok {
			return apperrors.NewUnauthorized(unauthorizedMessage)
		}
		return c.Next()
	}
}

// RequireAdmin admits only admin credentials. An anonymous caller is treated
// exactly like a non-admin one.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cred, ok := CredentialFromContext(c)
		if !ok || !cred.IsAdmin {
			return apperrors.NewUnauthorized(unauthorizedMessage)
		}
		return c.Next()
	}
}

// RequireSelf admits a caller whose subject equals the named path parameter.
func RequireSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cred, ok := CredentialFromContext(c)
		if !ok || cred.Subject == "" || cred.Subject != c.Params(param) {
			return apperrors.NewUnauthorized(unauthorizedMessage)
		}
		return c.Next()
	}
}
