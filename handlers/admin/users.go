package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/web"
)

type usersData struct {
	Users []*models.User
	Roles []models.Role
}

func (s *Handler) users(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	users, err := models.GetAllUsers(c.Request.Context(), db)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	s.tb.Build("admin/users").HTML(http.StatusOK, web.NewContext(c).WithData(&usersData{
		Users: users,
		Roles: []models.Role{models.RoleUser, models.RoleSuperAdmin},
	}))
}

func (s *Handler) updateRole(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	uID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.Wrap(err, "failed to parse user id"))
		return
	}
	role := models.Role(c.PostForm("role"))
	if role != models.RoleUser && role != models.RoleSuperAdmin {
		web.RedirectWithFailureAndMessage(c, "Unknown role")
		return
	}
	if err := models.UpdateUserRole(c.Request.Context(), db, uID, role); err != nil {
		log.WithError(err).Error("failed to update user role")
		web.RedirectWithFailureAndMessage(c, "Failed to update role")
		return
	}
	web.RedirectWithSuccessAndMessage(c, "Role updated")
}
