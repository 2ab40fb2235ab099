package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorized is the single authorization predicate for role-gated surfaces.
// Every admin check in the app goes through here.
func Authorized(u *User, required ...string) bool {
	if !u.HasAuth() {
		return false
	}
	for _, r := range required {
		if r == RoleSuperAdmin && !u.IsSuperAdmin() {
			return false
		}
	}
	return true
}

const RoleSuperAdmin = "SUPER_ADMIN"

// RequireSuperAdmin guards admin routes. Unauthenticated users are sent to
// login, authenticated non-admins get 403.
func RequireSuperAdmin(c *gin.Context) {
	u := GetUserFromContext(c)
	if !u.HasAuth() {
		c.Redirect(http.StatusFound, "/login?from="+c.Request.URL.Path)
		c.Abort()
		return
	}
	if !Authorized(u, RoleSuperAdmin) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	c.Next()
}
