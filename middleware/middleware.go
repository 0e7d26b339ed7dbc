package middleware

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Keys under which Authenticate stores the caller's identity in fiber Locals.
const (
	LocalsUserID   = "userID"
	LocalsUserRole = "userRole"
)

// Error messages returned by the auth middleware.
const (
	MsgMissingHeader     = "Missing authorization header"
	MsgInvalidFormat     = "Invalid token format"
	MsgInvalidToken      = "Invalid or expired token"
	MsgRoleMissing       = "Role not found in token"
	MsgInsufficientPerms = "Insufficient permissions"
)

// ErrNoClaims is returned when a request was not authenticated.
var ErrNoClaims = errors.New("no authenticated user")

// Claims are the identity fields stored by Authenticate.
type Claims struct {
	UserID string
	Role   string
}

func setClaims(c *fiber.Ctx, claims Claims) {
	c.Locals(LocalsUserID, claims.UserID)
	c.Locals(LocalsUserRole, claims.Role)
}

// ExtractClaims returns the identity stored on the request by Authenticate.
func ExtractClaims(c *fiber.Ctx) (Claims, error) {
	userID, ok := c.Locals(LocalsUserID).(string)
	if !ok || userID == "" {
		return Claims{}, ErrNoClaims
	}
	role, _ := c.Locals(LocalsUserRole).(string)
	return Claims{UserID: userID, Role: role}, nil
}

func reject(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}

// RequestLogger logs method, path, status and latency of every request.
func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("[HTTP] %s %s -> %d (%s)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start).Round(time.Microsecond))
	return err
}
