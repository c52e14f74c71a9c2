package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Astemirdum/room-reservation/pkg/auth"
	md "github.com/Astemirdum/room-reservation/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestAuthContext(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		userID, role string
		expectedCode int
		expectedBody string
	}{
		{name: "ok. default role", userID: "alice", expectedCode: http.StatusOK, expectedBody: "alice:user"},
		{name: "ok. admin", userID: "root", role: "admin", expectedCode: http.StatusOK, expectedBody: "root:admin"},
		{name: "err. no user", expectedCode: http.StatusUnauthorized, expectedBody: `{"message":"user-id is empty"}`},
		{name: "err. bad role", userID: "bob", role: "owner", expectedCode: http.StatusUnauthorized, expectedBody: `{"message":"user-role is invalid"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/whoami", func(c echo.Context) error {
				p, ok := auth.FromContext(c.Request().Context())
				require.True(t, ok)
				return c.String(http.StatusOK, p.UserID+":"+string(p.Role))
			}, md.AuthContext)

			r := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
			if tt.userID != "" {
				r.Header.Set(auth.XUserIDHeader, tt.userID)
			}
			if tt.role != "" {
				r.Header.Set(auth.XUserRoleHeader, tt.role)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	e.DELETE("/thing", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, md.AuthContext, md.AdminOnly)

	r := httptest.NewRequest(http.MethodDelete, "/thing", http.NoBody)
	r.Header.Set(auth.XUserIDHeader, "alice")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, http.StatusForbidden, w.Code)

	r = httptest.NewRequest(http.MethodDelete, "/thing", http.NoBody)
	r.Header.Set(auth.XUserIDHeader, "root")
	r.Header.Set(auth.XUserRoleHeader, "admin")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)
}
