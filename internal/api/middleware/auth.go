package middleware

import (
	"log"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"

	"colvote.com/internal/auth"
	"colvote.com/internal/domain"
)

// LocalsClaimsKey is where the verified claims live in the request context.
const LocalsClaimsKey = "claims"

// Protected verifies the bearer token, rejects revoked tokens, and enforces
// the Casbin role policy for the requested path and method. It reads shared
// state only (secret, enforcer, revocation list) and mutates nothing, so it is
// safe to run on every request concurrently.
func Protected(enforcer *casbin.Enforcer, jwtSecret []byte, revoker domain.TokenRevoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		claims, err := auth.ParseToken(jwtSecret, token)
		if err != nil {
			// Malformed, forged and expired tokens are all the same 401.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		if !claims.Role.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		revoked, err := revoker.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			log.Printf("Middleware: revocation check failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "authorization check failed"})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		// Role is the Casbin subject: policies are written per role, not per user.
		permit, err := enforcer.Enforce(string(claims.Role), c.Path(), c.Method())
		if err != nil {
			log.Printf("Middleware: policy check failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "authorization check failed"})
		}
		if !permit {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
		}

		c.Locals(LocalsClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the verified claims set by Protected, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(LocalsClaimsKey).(*auth.Claims)
	return claims
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
