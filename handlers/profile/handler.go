package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/auth"
	"github.com/watchdeck/web-ui/services/template"
	"github.com/watchdeck/web-ui/services/web"
)

type Data struct {
	Email   string
	Role    models.Role
	Want    int
	Watched int
}

type Handler struct {
	tb template.Builder[*web.Context]
	pg *cs.PG
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], pg *cs.PG) {
	h := &Handler{
		tb: tm.MustRegisterViews("profile/*").WithLayout("main"),
		pg: pg,
	}
	r.GET("/profile", h.get)
}

func (s *Handler) get(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	if !u.HasAuth() {
		c.Redirect(http.StatusFound, "/login?from=profile")
		return
	}
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	ctx := c.Request.Context()

	want, err := db.Model((*models.UserTitle)(nil)).Context(ctx).
		Where("user_id = ?", u.ID).
		Where("want_to_watch = TRUE").
		Count()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to count watchlist"))
		return
	}
	watched, err := db.Model((*models.UserTitle)(nil)).Context(ctx).
		Where("user_id = ?", u.ID).
		Where("watched = TRUE").
		Count()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to count watched"))
		return
	}

	s.tb.Build("profile/index").HTML(http.StatusOK, web.NewContext(c).WithData(&Data{
		Email:   u.Email,
		Role:    u.Role,
		Want:    want,
		Watched: watched,
	}))
}
