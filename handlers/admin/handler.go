package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/auth"
	"github.com/watchdeck/web-ui/services/oracle"
	"github.com/watchdeck/web-ui/services/settings"
	"github.com/watchdeck/web-ui/services/template"
	"github.com/watchdeck/web-ui/services/web"
)

type Handler struct {
	tb       template.Builder[*web.Context]
	pg       *cs.PG
	oracle   *oracle.Oracle
	settings *settings.Settings
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], pg *cs.PG, o *oracle.Oracle, st *settings.Settings) {
	h := &Handler{
		tb:       tm.MustRegisterViews("admin/*").WithLayout("main"),
		pg:       pg,
		oracle:   o,
		settings: st,
	}
	g := r.Group("/admin", auth.RequireSuperAdmin)
	g.GET("", h.index)
	g.GET("/titles", h.titles)
	g.GET("/titles/new", h.titleForm)
	g.GET("/titles/edit/:id", h.titleForm)
	g.POST("/titles", h.createTitle)
	g.POST("/titles/edit/:id", h.updateTitle)
	g.POST("/titles/delete/:id", h.deleteTitle)
	g.POST("/titles/lookup", h.lookup)
	g.POST("/titles/search", h.search)
	g.POST("/titles/trailer", h.trailer)
	g.GET("/genres", h.genres)
	g.POST("/genres", h.createGenre)
	g.POST("/genres/delete/:id", h.deleteGenre)
	g.GET("/users", h.users)
	g.POST("/users/role/:id", h.updateRole)
	g.POST("/settings/signup", h.updateSignup)
}

type indexData struct {
	Titles        int
	Genres        int
	Users         int
	SignupEnabled bool
}

func (s *Handler) index(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	ctx := c.Request.Context()

	titles, err := db.Model((*models.Title)(nil)).Context(ctx).Count()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to count titles"))
		return
	}
	genres, err := db.Model((*models.Genre)(nil)).Context(ctx).Count()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to count genres"))
		return
	}
	users, err := db.Model((*models.User)(nil)).Context(ctx).Count()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to count users"))
		return
	}
	as, err := s.settings.Get(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	s.tb.Build("admin/index").HTML(http.StatusOK, web.NewContext(c).WithData(&indexData{
		Titles:        titles,
		Genres:        genres,
		Users:         users,
		SignupEnabled: as.SignupEnabled,
	}))
}

func (s *Handler) updateSignup(c *gin.Context) {
	enabled := c.PostForm("enabled") == "on"
	if err := s.settings.SetSignupEnabled(c.Request.Context(), enabled); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	msg := "Signups disabled"
	if enabled {
		msg = "Signups enabled"
	}
	web.RedirectWithSuccessAndMessage(c, msg)
}
