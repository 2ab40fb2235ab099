package watchlist

import (
	"github.com/gin-gonic/gin"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/services/auth"
	"github.com/watchdeck/web-ui/services/template"
	"github.com/watchdeck/web-ui/services/watchlist"
	"github.com/watchdeck/web-ui/services/web"
)

type Handler struct {
	tb    template.Builder[*web.Context]
	pg    *cs.PG
	store *watchlist.Store
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], pg *cs.PG, store *watchlist.Store) {
	h := &Handler{
		tb:    tm.MustRegisterViews("watchlist/*").WithLayout("main"),
		pg:    pg,
		store: store,
	}
	r.GET("/list", h.list)
	r.GET("/watched", h.watched)
	r.POST("/list/toggle", auth.HasAuth, h.toggleWantToWatch)
	r.POST("/watched/toggle", auth.HasAuth, h.toggleWatched)
}
