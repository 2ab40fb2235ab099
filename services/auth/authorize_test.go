package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/watchdeck/web-ui/models"
)

func TestAuthorized(t *testing.T) {
	t.Run("anonymous never passes", func(t *testing.T) {
		assert.False(t, Authorized(&User{}))
		assert.False(t, Authorized(&User{}, RoleSuperAdmin))
	})

	t.Run("plain user passes without role requirement", func(t *testing.T) {
		u := &User{Email: "user@example.com", Role: models.RoleUser}
		assert.True(t, Authorized(u))
		assert.False(t, Authorized(u, RoleSuperAdmin))
	})

	t.Run("super admin passes everything", func(t *testing.T) {
		u := &User{Email: "admin@example.com", Role: models.RoleSuperAdmin}
		assert.True(t, Authorized(u))
		assert.True(t, Authorized(u, RoleSuperAdmin))
	})
}

func TestHasAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("anonymous is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/list/toggle", nil)

		HasAuth(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("signed-in user passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest("POST", "/list/toggle", nil)
		ctx := context.WithValue(req.Context(), UserContext{}, &models.User{Email: "user@example.com"})
		c.Request = req.WithContext(ctx)

		HasAuth(c)

		assert.False(t, c.IsAborted())
	})
}
