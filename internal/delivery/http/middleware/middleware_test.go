package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-analyzer/internal/pkg/jwt"
	"resume-analyzer/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(logger *log.Logger, handler fiber.Handler, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(logger, "/skip").Middleware())
	app.Use(NewErrorMiddleware(logger).Middleware())
	for _, h := range extra {
		app.Use("/t", h)
	}
	app.Get("/t", handler)
	app.Get("/skip", handler)
	return app
}

func decode(t *testing.T, resp *http.Response) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestErrorMiddleware_Mapping(t *testing.T) {
	discard := log.New(io.Discard, "", 0)
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantData   bool
	}{
		{name: "app 422", err: NewAppError(fiber.StatusUnprocessableEntity, "bad pdf", map[string]string{"kind": "extraction"}, nil), wantStatus: 422, wantMsg: "bad pdf", wantData: true},
		{name: "app 503 keeps data", err: NewAppError(fiber.StatusServiceUnavailable, "model not trained", map[string]string{"kind": "not_trained"}, nil), wantStatus: 503, wantMsg: "model not trained", wantData: true},
		{name: "app 500 hidden", err: NewAppError(fiber.StatusInternalServerError, "secret detail", map[string]string{"x": "y"}, nil), wantStatus: 500, wantMsg: response.MessageInternalServerError},
		{name: "fiber 404", err: fiber.NewError(fiber.StatusNotFound, ""), wantStatus: 404, wantMsg: response.MessageNotFound},
		{name: "plain error", err: errors.New("boom"), wantStatus: 500, wantMsg: response.MessageInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newApp(discard, func(fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/t", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			env := decode(t, resp)
			assert.Equal(t, tc.wantStatus, env.Status)
			assert.Equal(t, tc.wantMsg, env.Message)
			assert.Equal(t, tc.wantData, env.Data != nil)
		})
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := newApp(log.New(io.Discard, "", 0), func(fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/t", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestAccessLog_RequestIDAndSkip(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(log.New(&buf, "", 0), func(c fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(HeaderRequestID, "rid-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "rid-123", resp.Header.Get(HeaderRequestID))
	assert.Contains(t, buf.String(), "rid=rid-123")
	assert.Contains(t, buf.String(), "status=200")

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/skip", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
	assert.Empty(t, buf.String())
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("0123456789abcdef0123456789abcdef", time.Hour, "")
	token, _, err := svc.GenerateAdminToken("ops")
	require.NoError(t, err)

	ok := func(c fiber.Ctx) error {
		sub, _ := c.Locals(CtxSubjectKey).(string)
		return c.SendString("hello " + sub)
	}
	app := newApp(log.New(io.Discard, "", 0), ok, NewAuthMiddleware(svc).Middleware())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: 401},
		{name: "wrong scheme", header: "Basic abc", want: 401},
		{name: "garbage", header: "Bearer nope", want: 401},
		{name: "valid", header: "bearer " + token, want: 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/t", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
			if tc.want == 200 {
				body, _ := io.ReadAll(resp.Body)
				assert.True(t, strings.HasSuffix(string(body), "ops"))
			}
		})
	}
}

func TestAuthMiddleware_DisabledWithoutService(t *testing.T) {
	app := newApp(log.New(io.Discard, "", 0), func(c fiber.Ctx) error { return c.SendString("open") }, NewAuthMiddleware(nil).Middleware())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/t", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
