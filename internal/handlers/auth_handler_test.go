package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mlemaire/user-management-api/internal/auth"
	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/handlers"
	"github.com/mlemaire/user-management-api/internal/routes"
	"github.com/mlemaire/user-management-api/internal/services"
	"github.com/mlemaire/user-management-api/internal/store"
	"github.com/mlemaire/user-management-api/internal/token"
	"github.com/mlemaire/user-management-api/internal/validation"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *store.MemoryStore, *token.Manager) {
	t.Helper()
	memStore := store.NewMemoryStore()
	hasher := auth.NewHasher(bcrypt.MinCost)
	tokens := token.NewManager(testSecret, time.Hour, "api", "client")

	authService := services.NewAuthService(memStore, hasher, tokens)
	userService := services.NewUserService(memStore, hasher)

	app := fiber.New()
	routes.Setup(app, tokens,
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService),
		handlers.NewHealthHandler(),
	)
	return app, memStore, tokens
}

func jsonRequest(t *testing.T, app *fiber.App, method, target, bearer string, payload interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	fields := map[string]json.RawMessage{}
	_ = json.Unmarshal(raw, &fields)
	return resp, fields
}

func str(t *testing.T, fields map[string]json.RawMessage, key string) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(fields[key], &s), key)
	return s
}

func registrationPayload(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName:  "Jean",
		LastName:   "Martin",
		Email:      email,
		Password:   "secret1",
		BirthDate:  time.Now().AddDate(-18, 0, 0).Format(validation.BirthDateLayout),
		City:       "Lyon",
		PostalCode: "69001",
	}
}

func TestRegisterEndpoint_Success(t *testing.T) {
	app, memStore, _ := newTestApp(t)

	resp, fields := jsonRequest(t, app, "POST", "/api/auth/register", "", registrationPayload("a@b.com"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, fields["userId"])

	stored, err := memStore.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
}

func TestRegisterEndpoint_DuplicateEmailCaseVariant(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := jsonRequest(t, app, "POST", "/api/auth/register", "", registrationPayload("a@b.com"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, fields := jsonRequest(t, app, "POST", "/api/auth/register", "", registrationPayload("A@B.com"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, dto.CodeEmailTaken, str(t, fields, "error"))
}

func TestRegisterEndpoint_ValidationDetails(t *testing.T) {
	app, _, _ := newTestApp(t)

	payload := registrationPayload("bad-email")
	payload.Password = "abc"
	payload.PostalCode = "12"

	resp, fields := jsonRequest(t, app, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeValidationFailed, str(t, fields, "error"))

	var details map[string]string
	require.NoError(t, json.Unmarshal(fields["details"], &details))
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "postalCode")
}

func TestLoginEndpoint_SuccessThenMe(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := jsonRequest(t, app, "POST", "/api/auth/register", "", registrationPayload("a@b.com"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, fields := jsonRequest(t, app, "POST", "/api/auth/login", "", &dto.LoginRequest{Email: "a@b.com", Password: "secret1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	signed := str(t, fields, "token")
	require.NotEmpty(t, signed)

	resp, fields = jsonRequest(t, app, "GET", "/api/auth/me", signed, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me dto.MeResponse
	full, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(full, &me))
	assert.Equal(t, "a@b.com", me.User.Email)
	assert.Equal(t, "user", me.User.Role)
	assert.Equal(t, []string{"read"}, me.User.Permissions)
	assert.NotEmpty(t, me.TokenInfo.IssuedAt)
	assert.NotEmpty(t, me.TokenInfo.ExpiresAt)
}

func TestLoginEndpoint_EnumerationResistance(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := jsonRequest(t, app, "POST", "/api/auth/register", "", registrationPayload("a@b.com"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	unknownResp, unknownFields := jsonRequest(t, app, "POST", "/api/auth/login", "",
		&dto.LoginRequest{Email: "nobody@b.com", Password: "secret1"})
	wrongResp, wrongFields := jsonRequest(t, app, "POST", "/api/auth/login", "",
		&dto.LoginRequest{Email: "a@b.com", Password: "wrong"})

	assert.Equal(t, fiber.StatusUnauthorized, unknownResp.StatusCode)
	assert.Equal(t, wrongResp.StatusCode, unknownResp.StatusCode)
	assert.Equal(t, str(t, unknownFields, "message"), str(t, wrongFields, "message"))
	assert.Equal(t, str(t, unknownFields, "error"), str(t, wrongFields, "error"))
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, fields := jsonRequest(t, app, "POST", "/api/auth/login", "", &dto.LoginRequest{Email: "a@b.com"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeMissingCredentials, str(t, fields, "error"))
}

func TestLogoutEndpoint_RequiresToken(t *testing.T) {
	app, _, tokens := newTestApp(t)

	resp, fields := jsonRequest(t, app, "POST", "/api/auth/logout", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeMissingToken, str(t, fields, "error"))

	signed := seedAndLogin(t, tokens)
	resp, fields = jsonRequest(t, app, "POST", "/api/auth/logout", signed, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, fields["message"])
}
