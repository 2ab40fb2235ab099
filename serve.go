package main

import (
	"net/http"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	wad "github.com/watchdeck/web-ui/handlers/admin"
	wau "github.com/watchdeck/web-ui/handlers/auth"
	wc "github.com/watchdeck/web-ui/handlers/catalog"
	wp "github.com/watchdeck/web-ui/handlers/poster"
	"github.com/watchdeck/web-ui/handlers/profile"
	ww "github.com/watchdeck/web-ui/handlers/watchlist"
	"github.com/watchdeck/web-ui/services/auth"
	"github.com/watchdeck/web-ui/services/common"
	"github.com/watchdeck/web-ui/services/oracle"
	"github.com/watchdeck/web-ui/services/settings"
	"github.com/watchdeck/web-ui/services/template"
	"github.com/watchdeck/web-ui/services/watchlist"
	w "github.com/watchdeck/web-ui/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterS3ClientFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
	c.Flags = auth.RegisterFlags(c.Flags)
	c.Flags = oracle.RegisterFlags(c.Flags)
	c.Flags = wp.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := pgMigrate(c, "up")
	if err != nil {
		return err
	}

	// Setting template renderer
	re := multitemplate.NewRenderer()

	// Setting TemplateManager
	tm := template.NewManager[*w.Context](re).
		WithHelper(w.NewHelper(c))

	var servers []cs.Servable

	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.HTMLRender = re

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	// Setting Sessions
	sessStore := cookie.NewStore([]byte(c.String(common.SessionSecretFlag)))
	r.Use(sessions.Sessions("session", sessStore))

	// Setting AppSettings
	st := settings.New(pg)

	// Setting Auth
	a := auth.New(c, pg, st)
	if a != nil {
		err = a.Init()
		if err != nil {
			return err
		}
		a.RegisterHandler(r)
	}

	// Setting Redis
	redis := cs.NewRedisClient(c)
	defer redis.Close()

	// Setting S3 Client
	s3Cl := cs.NewS3Client(c, cl)

	// Setting Oracle
	o := oracle.New(c)

	// Setting Watchlist Store
	wls := watchlist.NewStore(pg, watchlist.NewGuard(redis))

	// Setting AuthHandlers
	if a != nil {
		wau.RegisterHandler(r, tm, st)
	}

	// Setting CatalogHandler
	wc.RegisterHandler(r, tm, pg)

	// Setting WatchlistHandler
	ww.RegisterHandler(r, tm, pg, wls)

	// Setting ProfileHandler
	profile.RegisterHandler(r, tm, pg)

	// Setting AdminHandler
	wad.RegisterHandler(r, tm, pg, o, st)

	// Setting PosterHandler
	wp.RegisterHandler(c, r, pg, cl, s3Cl)

	// Render templates
	err = tm.Init()
	if err != nil {
		return err
	}

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
