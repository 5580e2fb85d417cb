package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestJwtMiddleware(t *testing.T) {
	ConfigureJwt("unit-secret")
	userId := uuid.New().String()
	exp := time.Now().Add(time.Hour).Unix()

	app := fiber.New()
	app.Get("/me", JwtMiddleware, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Token abcdef",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, "another-secret", jwt.MapClaims{"user_id": userId, "exp": exp}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer " + signToken(t, "unit-secret", jwt.MapClaims{"user_id": userId, "exp": time.Now().Add(-time.Hour).Unix()}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "missing user_id claim",
			header:     "Bearer " + signToken(t, "unit-secret", jwt.MapClaims{"exp": exp}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "user_id not a uuid",
			header:     "Bearer " + signToken(t, "unit-secret", jwt.MapClaims{"user_id": "not-a-uuid", "exp": exp}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer " + signToken(t, "unit-secret", jwt.MapClaims{"user_id": userId, "exp": exp}),
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
