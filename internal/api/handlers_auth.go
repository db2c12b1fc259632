package api

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/evamaren/daybook/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

const (
	loginRateLimit  = 10
	loginRateWindow = 15 * time.Minute
)

type credentialsPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Remember bool   `json:"remember" form:"remember"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := normalizeEmail(payload.Email)
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		return apiError(c, fiber.StatusBadRequest, "a valid email is required")
	}
	if len(payload.Password) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	exists, err := handler.repos.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to check account")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "an account with this email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	user := models.User{Email: email, PasswordHash: string(passwordHash)}
	if err := handler.repos.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, user.ID, payload.Remember); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := normalizeEmail(payload.Email)
	if email == "" || payload.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "email and password are required")
	}

	now := time.Now()
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginRateLimit, loginRateWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many sign-in attempts, try again later")
	}

	user, err := handler.repos.Users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handler.loginLimiter.record(limiterKey, now, loginRateWindow)
			return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		handler.loginLimiter.record(limiterKey, now, loginRateWindow)
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	handler.loginLimiter.reset(limiterKey)
	if err := handler.setAuthCookie(c, user.ID, payload.Remember); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start session")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Logout clears the session cookie and drops the owner's hydrated space along
// with its on-disk lists, so nothing of the account lingers on the machine.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if user, ok := currentUser(c); ok {
		handler.registry.Forget(user.ID)
	}
	clearAuthCookie(c, handler.cookieSecure)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}
