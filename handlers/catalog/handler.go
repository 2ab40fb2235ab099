package catalog

import (
	"github.com/gin-gonic/gin"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/services/template"
	"github.com/watchdeck/web-ui/services/web"
)

type Handler struct {
	tb template.Builder[*web.Context]
	pg *cs.PG
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], pg *cs.PG) {
	h := &Handler{
		tb: tm.MustRegisterViews("catalog/*").WithLayout("main"),
		pg: pg,
	}
	r.GET("/", h.index)
	r.GET("/search", h.search)
}
