package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/repository/memory"
	apperrors "github.com/spec-kit/daily-pulse/pkg/util/errorutil"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) ParseToken(token string) (Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(Claims)
	return claims, args.Error(1)
}

func newGuardedApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
		},
	})
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"email": principal.Email, "role": principal.Role})
	})
	app.Get("/guarded/:email?", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authorization string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestAuthMiddleware(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("ParseToken", "good").Return(Claims{"email": "ada@example.com"}, nil)
	verifier.On("ParseToken", "expired").Return(nil, ErrInvalidOrExpired)
	app := newGuardedApp(NewAuthMiddleware(verifier).Handle)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good"},
		{"no token", "Bearer "},
		{"invalid token", "Bearer expired"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, app, "/guarded", tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, UnauthorizedMessage, body["message"])
		})
	}

	t.Run("valid token", func(t *testing.T) {
		status, body := doRequest(t, app, "/guarded", "Bearer good")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "", body["role"])
	})

	verifier.AssertNotCalled(t, "ParseToken", "")
}

func TestRequireAdmin(t *testing.T) {
	store := memory.NewStore()
	users := store.Users()
	require.NoError(t, users.Create(context.Background(), &domain.User{Email: "root@example.com", Role: domain.UserRoleAdmin}))
	require.NoError(t, users.Create(context.Background(), &domain.User{Email: "ada@example.com"}))

	verifier := &mockVerifier{}
	verifier.On("ParseToken", "admin").Return(Claims{"email": "root@example.com", "role": "user"}, nil)
	verifier.On("ParseToken", "reader").Return(Claims{"email": "ada@example.com", "role": "admin"}, nil)
	verifier.On("ParseToken", "stranger").Return(Claims{"email": "ghost@example.com"}, nil)
	verifier.On("ParseToken", "anonymous").Return(Claims{}, nil)

	app := newGuardedApp(NewAuthMiddleware(verifier).Handle, RequireAdmin(users))

	t.Run("admin passes", func(t *testing.T) {
		status, body := doRequest(t, app, "/guarded", "Bearer admin")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "admin", body["role"])
	})

	for _, token := range []string{"reader", "stranger", "anonymous"} {
		t.Run(token+" forbidden", func(t *testing.T) {
			status, body := doRequest(t, app, "/guarded", "Bearer "+token)
			assert.Equal(t, http.StatusForbidden, status)
			assert.Equal(t, ForbiddenMessage, body["message"])
		})
	}

	t.Run("no principal", func(t *testing.T) {
		bare := newGuardedApp(RequireAdmin(users))
		status, _ := doRequest(t, bare, "/guarded", "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("demotion applies immediately", func(t *testing.T) {
		out, err := users.SetRole(context.Background(), mustUser(t, store, "root@example.com").ID, "")
		require.NoError(t, err)
		require.Equal(t, int64(1), out.ModifiedCount)

		status, _ := doRequest(t, app, "/guarded", "Bearer admin")
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestRequireSelf(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("ParseToken", "ada").Return(Claims{"email": "ada@example.com"}, nil)
	app := newGuardedApp(NewAuthMiddleware(verifier).Handle, RequireSelf("email"))

	status, _ := doRequest(t, app, "/guarded/ada@example.com", "Bearer ada")
	assert.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, app, "/guarded/root@example.com", "Bearer ada")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, ForbiddenMessage, body["message"])
}

func mustUser(t *testing.T, store *memory.Store, email string) *domain.User {
	t.Helper()
	user, err := store.Users().GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return user
}
