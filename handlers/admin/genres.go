package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/web"
)

type genresData struct {
	Genres []*models.Genre
}

func (s *Handler) genres(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	genres, err := models.GetAllGenres(c.Request.Context(), db)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	s.tb.Build("admin/genres").HTML(http.StatusOK, web.NewContext(c).WithData(&genresData{
		Genres: genres,
	}))
}

func (s *Handler) createGenre(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		web.RedirectWithFailureAndMessage(c, "Name is required")
		return
	}
	g, err := models.CreateGenre(c.Request.Context(), db, name)
	if err != nil {
		log.WithError(err).Error("failed to create genre")
		web.RedirectWithFailureAndMessage(c, "Failed to create genre")
		return
	}
	web.RedirectWithSuccessAndMessage(c, "Genre \""+g.Name+"\" created")
}

func (s *Handler) deleteGenre(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	gID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.Wrap(err, "failed to parse genre id"))
		return
	}
	if err := models.DeleteGenre(c.Request.Context(), db, gID); err != nil {
		log.WithError(err).Error("failed to delete genre")
		web.RedirectWithFailureAndMessage(c, "Failed to delete genre")
		return
	}
	web.RedirectWithSuccessAndMessage(c, "Genre deleted")
}
