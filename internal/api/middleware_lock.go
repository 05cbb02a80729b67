package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	lockCookieName = "cyclia_session"
	lockSubject    = "unlocked"
)

type unlockRequest struct {
	Passphrase string `json:"passphrase"`
}

// LockRequired guards the API when a passphrase hash is configured. The
// unlock endpoint itself stays reachable.
func (handler *Handler) LockRequired(c *fiber.Ctx) error {
	if !handler.lock.Enabled() {
		return c.Next()
	}
	if c.Path() == "/api/auth/unlock" || c.Path() == "/healthz" {
		return c.Next()
	}
	if !handler.sessionValid(c.Cookies(lockCookieName)) {
		return apiError(c, fiber.StatusUnauthorized, "locked")
	}
	return c.Next()
}

// Unlock checks the passphrase against the configured bcrypt hash and
// issues a session cookie.
func (handler *Handler) Unlock(c *fiber.Ctx) error {
	if !handler.lock.Enabled() {
		return c.JSON(fiber.Map{"unlocked": true})
	}

	var payload unlockRequest
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(handler.lock.PassphraseHash), []byte(payload.Passphrase)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "wrong passphrase")
	}

	token, err := handler.buildSessionToken()
	if err != nil {
		handler.logger.Error("session token build failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to unlock")
	}

	c.Cookie(&fiber.Cookie{
		Name:     lockCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(handler.sessionTTL()),
	})
	return c.JSON(fiber.Map{"unlocked": true})
}

// Lock clears the session cookie.
func (handler *Handler) Lock(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     lockCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	return c.JSON(fiber.Map{"unlocked": false})
}

func (handler *Handler) sessionTTL() time.Duration {
	minutes := handler.lock.SessionTTLMinutes
	if minutes <= 0 {
		minutes = 12 * 60
	}
	return time.Duration(minutes) * time.Minute
}

func (handler *Handler) buildSessionToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   lockSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(handler.sessionTTL())),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(handler.lock.SessionSecret))
}

func (handler *Handler) sessionValid(raw string) bool {
	if raw == "" {
		return false
	}
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(handler.lock.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	return ok && claims.Subject == lockSubject
}
