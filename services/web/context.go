package web

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/watchdeck/web-ui/services/auth"
)

const (
	flashSuccess = "success"
	flashFailure = "failure"
)

// Context is the render context for every page.
type Context struct {
	Data     any
	User     *auth.User
	Err      error
	Messages []string
	Alerts   []string

	c *gin.Context
}

func NewContext(c *gin.Context) *Context {
	ctx := &Context{
		c:    c,
		User: auth.GetUserFromContext(c),
	}
	sess := sessions.Default(c)
	for _, f := range sess.Flashes(flashSuccess) {
		if m, ok := f.(string); ok {
			ctx.Messages = append(ctx.Messages, m)
		}
	}
	for _, f := range sess.Flashes(flashFailure) {
		if m, ok := f.(string); ok {
			ctx.Alerts = append(ctx.Alerts, m)
		}
	}
	_ = sess.Save()
	return ctx
}

func (s *Context) WithData(d any) *Context {
	s.Data = d
	return s
}

func (s *Context) WithErr(err error) *Context {
	s.Err = err
	return s
}

func (s *Context) Gin() *gin.Context {
	return s.c
}

func returnURL(c *gin.Context) string {
	if u := c.GetHeader("X-Return-Url"); u != "" {
		return u
	}
	if u := c.Request.Referer(); u != "" {
		return u
	}
	return "/"
}

func redirectWithFlash(c *gin.Context, kind, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, kind)
	_ = sess.Save()
	c.Redirect(http.StatusFound, returnURL(c))
}

func RedirectWithSuccessAndMessage(c *gin.Context, msg string) {
	redirectWithFlash(c, flashSuccess, msg)
}

func RedirectWithFailureAndMessage(c *gin.Context, msg string) {
	redirectWithFlash(c, flashFailure, msg)
}
