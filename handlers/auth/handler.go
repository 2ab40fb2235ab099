package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/watchdeck/web-ui/services/auth"
	"github.com/watchdeck/web-ui/services/settings"
	"github.com/watchdeck/web-ui/services/template"
	"github.com/watchdeck/web-ui/services/web"
)

type LoginData struct {
	From string
}

type SignupData struct {
	SignupEnabled bool
}

type LogoutData struct{}

type Handler struct {
	tb       template.Builder[*web.Context]
	settings *settings.Settings
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], st *settings.Settings) {
	h := &Handler{
		tb:       tm.MustRegisterViews("auth/*").WithLayout("main"),
		settings: st,
	}

	r.Use(func(c *gin.Context) {
		u := auth.GetUserFromContext(c)
		if u != nil && u.Expired {
			h.refresh(c)
			c.Abort()
			return
		}
	})

	r.GET("/login", h.login)
	r.GET("/signup", h.signup)
	r.GET("/forgot", h.forgot)
	r.GET("/refresh", h.refresh)
	r.GET("/logout", h.logout)
}

func (s *Handler) forgot(c *gin.Context) {
	s.tb.Build("auth/forgot").HTML(http.StatusOK, web.NewContext(c))
}

func (s *Handler) refresh(c *gin.Context) {
	s.tb.Build("auth/refresh").HTML(http.StatusOK, web.NewContext(c))
}

func (s *Handler) login(c *gin.Context) {
	ld := LoginData{
		From: c.Query("from"),
	}
	if c.Query("return-url") != "" {
		session := sessions.Default(c)
		session.Set("return-url", c.Query("return-url"))
		_ = session.Save()
	}
	s.tb.Build("auth/login").HTML(http.StatusOK, web.NewContext(c).WithData(ld))
}

func (s *Handler) signup(c *gin.Context) {
	sd := SignupData{
		SignupEnabled: s.settings.SignupEnabled(c.Request.Context()),
	}
	s.tb.Build("auth/signup").HTML(http.StatusOK, web.NewContext(c).WithData(sd))
}

func (s *Handler) logout(c *gin.Context) {
	s.tb.Build("auth/logout").HTML(http.StatusOK, web.NewContext(c).WithData(LogoutData{}))
}
