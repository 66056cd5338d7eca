package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-notification-service/internal/domain"
	"github.com/spec-kit/user-notification-service/internal/repository"
	apperrors "github.com/spec-kit/user-notification-service/pkg/util"
)

func newProtectedApp(t *testing.T, users repository.UserRepository, tm *TokenManager, guards ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
		},
	})
	handlers := append([]fiber.Handler{NewAuthMiddleware(tm, users).Handle}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.SendString(principal.Identity.Email)
	})
	app.Get("/me", handlers...)
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.Message
}

func seedUser(t *testing.T, status domain.UserStatus) *repository.MemoryUserRepository {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		UserID: "u1", Email: "ada@x.io", Role: "admin", Status: status,
	}))
	return users
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	valid, err := tm.GenerateToken("ada@x.io", "admin")
	require.NoError(t, err)
	stranger, err := tm.GenerateToken("ghost@x.io", "admin")
	require.NoError(t, err)

	app := newProtectedApp(t, seedUser(t, domain.UserStatusActive), tm)

	cases := map[string]struct {
		header  string
		message string
	}{
		"missing header":  {"", "missing authorization header"},
		"wrong scheme":    {"Basic " + valid, "invalid authorization header"},
		"no token":        {"Bearer", "invalid authorization header"},
		"garbage token":   {"Bearer not.a.token", "invalid token"},
		"unknown subject": {"Bearer " + stranger, "user not found"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, message := call(t, app, tc.header)
			assert.Equal(t, fiber.StatusUnauthorized, status)
			assert.Equal(t, tc.message, message)
		})
	}

	status, _ := call(t, app, "bearer "+valid)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAuthMiddleware_BlockedStatuses(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	token, err := tm.GenerateToken("ada@x.io", "admin")
	require.NoError(t, err)

	for _, status := range []domain.UserStatus{domain.UserStatusInactive, domain.UserStatusDeleted, domain.UserStatusArchived} {
		app := newProtectedApp(t, seedUser(t, status), tm)

		code, message := call(t, app, "Bearer "+token)
		assert.Equal(t, fiber.StatusUnauthorized, code, string(status))
		assert.Equal(t, "User account is not active", message)
	}
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	token, err := tm.GenerateToken("ada@x.io", "admin")
	require.NoError(t, err)
	users := seedUser(t, domain.UserStatusActive)

	status, _ := call(t, newProtectedApp(t, users, tm, RequireRole("owner")), "Bearer "+token)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = call(t, newProtectedApp(t, users, tm, RequireRole("owner", "admin")), "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, newProtectedApp(t, users, tm, RequireRole()), "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
}
