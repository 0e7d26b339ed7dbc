package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"stocksmart/config"
	"stocksmart/models"
)

// Authenticate verifies the bearer JWT and stores the caller's identity for
// ExtractClaims and CheckRole.
func Authenticate(c *fiber.Ctx) error {
	tokenString, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
	if msg != "" {
		return reject(c, fiber.StatusUnauthorized, msg)
	}

	claims, err := parseToken(tokenString, []byte(config.AppConfig.JWTSecret))
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, MsgInvalidToken)
	}

	setClaims(c, Claims{UserID: claims.UserID, Role: claims.Role})
	return c.Next()
}

func bearerToken(header string) (string, string) {
	if header == "" {
		return "", MsgMissingHeader
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", MsgInvalidFormat
	}
	return token, ""
}

func parseToken(tokenString string, secret []byte) (*models.JwtClaims, error) {
	claims := &models.JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// CheckRole lets the request through only when Authenticate stored one of roles.
func CheckRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := ExtractClaims(c)
		if err != nil || claims.Role == "" {
			return reject(c, fiber.StatusForbidden, MsgRoleMissing)
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return reject(c, fiber.StatusForbidden, MsgInsufficientPerms)
	}
}
