package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/jwt"
)

// LocalIdentity is the Fiber locals key carrying the resolved *domain.Identity.
const LocalIdentity = "identity"

// AuthMiddleware validates the Bearer token and resolves the session identity
// into c.Locals. The identity rides entirely in the token claims; no DB
// round-trip per request.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		claims, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			// Unknown role in an otherwise valid token: treat as no session.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		c.Locals(LocalIdentity, &domain.Identity{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  role,
		})
		return c.Next()
	}
}

// GetIdentity returns the session identity set by AuthMiddleware, or nil for
// an anonymous request.
func GetIdentity(c *fiber.Ctx) *domain.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return nil
	}
	id, _ := v.(*domain.Identity)
	return id
}

// RequireManageData rejects sessions below MANAGER before the handler runs.
// The services check again; this keeps unauthorized traffic off them.
func RequireManageData(c *fiber.Ctx) error {
	id := GetIdentity(c)
	if id == nil || !id.Role.CanManageData() {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	return c.Next()
}

// RequireViewLogs rejects sessions below ADMIN before the handler runs.
func RequireViewLogs(c *fiber.Ctx) error {
	id := GetIdentity(c)
	if id == nil || !id.Role.CanViewLogs() {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	return c.Next()
}
