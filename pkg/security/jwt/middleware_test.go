package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraev/resumeforge/pkg/auth"
)

func protectedApp(codec *Codec) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewAuthMiddleware(codec), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"email":  c.Locals("userEmail"),
		})
	})
	return app
}

func TestMiddleware_ValidCookie(t *testing.T) {
	codec := NewCodec(testSecret, "resumeforge", 0)
	user := auth.User{ID: uuid.New(), Email: "jane@example.com"}
	token, err := codec.Issue(context.Background(), user)
	require.NoError(t, err)

	app := protectedApp(codec)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), user.ID.String())
	assert.Contains(t, string(body), "jane@example.com")
}

func TestMiddleware_BearerHeader(t *testing.T) {
	codec := NewCodec(testSecret, "resumeforge", 0)
	token, err := codec.Issue(context.Background(), auth.User{ID: uuid.New(), Email: "jane@example.com"})
	require.NoError(t, err)

	app := protectedApp(codec)

	for _, header := range []string{"Bearer " + token, token} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

// All rejection paths must return the same body so a caller cannot tell an
// expired credential from a forged one.
func TestMiddleware_UniformUnauthorizedResponse(t *testing.T) {
	codec := NewCodec(testSecret, "resumeforge", 0)
	user := auth.User{ID: uuid.New(), Email: "jane@example.com"}

	expired := signWithExpiry(t, user, "resumeforge", time.Now().Add(-time.Hour))

	valid, err := codec.Issue(context.Background(), user)
	require.NoError(t, err)
	tail := "AA"
	if strings.HasSuffix(valid, "AA") {
		tail = "BB"
	}
	tampered := valid[:len(valid)-2] + tail

	app := protectedApp(codec)
	var bodies []string
	for _, token := range []string{"", expired, tampered, "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		bodies = append(bodies, string(b))
	}
	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}
}

func TestSessionCookie(t *testing.T) {
	codec := NewCodec(testSecret, "resumeforge", time.Hour)

	ck := SessionCookie("tok", codec, false)
	assert.Equal(t, CookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 3600, ck.MaxAge)
	assert.True(t, ck.HTTPOnly)
	assert.True(t, ck.Secure)

	dev := SessionCookie("tok", codec, true)
	assert.False(t, dev.Secure)

	cleared := ClearSessionCookie(true)
	assert.Equal(t, CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
