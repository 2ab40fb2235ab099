package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/web"
)

type titlesData struct {
	Titles []*models.Title
}

func (s *Handler) titles(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	titles, err := models.GetAllTitles(c.Request.Context(), db)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	s.tb.Build("admin/titles").HTML(http.StatusOK, web.NewContext(c).WithData(&titlesData{
		Titles: titles,
	}))
}

type titleFormData struct {
	Title  *models.Title
	Genres []*models.Genre
	Types  []models.ContentType
}

func (s *Handler) titleForm(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	ctx := c.Request.Context()
	genres, err := models.GetAllGenres(ctx, db)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	title := &models.Title{Type: models.ContentTypeMovie}
	if id := c.Param("id"); id != "" {
		tID, err := uuid.FromString(id)
		if err != nil {
			_ = c.AbortWithError(http.StatusBadRequest, errors.Wrap(err, "failed to parse title id"))
			return
		}
		title, err = models.GetTitleByID(ctx, db, tID)
		if err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		if title == nil {
			_ = c.AbortWithError(http.StatusNotFound, errors.New("title not found"))
			return
		}
	}
	s.tb.Build("admin/title_form").HTML(http.StatusOK, web.NewContext(c).WithData(&titleFormData{
		Title:  title,
		Genres: genres,
		Types:  models.ContentTypes,
	}))
}

func (s *Handler) createTitle(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	ctx := c.Request.Context()
	title := &models.Title{}
	if err := bindTitleForm(c, db, title); err != nil {
		web.RedirectWithFailureAndMessage(c, err.Error())
		return
	}
	if err := models.CreateTitle(ctx, db, title); err != nil {
		log.WithError(err).Error("failed to create title")
		web.RedirectWithFailureAndMessage(c, "Failed to create title")
		return
	}
	web.RedirectWithSuccessAndMessage(c, "Title \""+title.Name+"\" created")
}

func (s *Handler) updateTitle(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	ctx := c.Request.Context()
	tID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.Wrap(err, "failed to parse title id"))
		return
	}
	title, err := models.GetTitleByID(ctx, db, tID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if title == nil {
		_ = c.AbortWithError(http.StatusNotFound, errors.New("title not found"))
		return
	}
	if err := bindTitleForm(c, db, title); err != nil {
		web.RedirectWithFailureAndMessage(c, err.Error())
		return
	}
	if err := models.UpdateTitle(ctx, db, title); err != nil {
		log.WithError(err).Error("failed to update title")
		web.RedirectWithFailureAndMessage(c, "Failed to update title")
		return
	}
	web.RedirectWithSuccessAndMessage(c, "Title \""+title.Name+"\" updated")
}

func (s *Handler) deleteTitle(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no db"))
		return
	}
	ctx := c.Request.Context()
	tID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.Wrap(err, "failed to parse title id"))
		return
	}
	if err := models.DeleteUserTitlesByTitle(ctx, db, tID); err != nil {
		log.WithError(err).Error("failed to delete title relations")
		web.RedirectWithFailureAndMessage(c, "Failed to delete title")
		return
	}
	if err := models.DeleteTitle(ctx, db, tID); err != nil {
		log.WithError(err).Error("failed to delete title")
		web.RedirectWithFailureAndMessage(c, "Failed to delete title")
		return
	}
	web.RedirectWithSuccessAndMessage(c, "Title deleted")
}

func bindTitleForm(c *gin.Context, db *pg.DB, title *models.Title) error {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		return errors.New("Name is required")
	}
	ct := models.ContentType(c.PostForm("type"))
	if !ct.Valid() {
		return errors.New("Unknown content type")
	}
	title.Name = name
	title.Type = ct
	title.Description = strings.TrimSpace(c.PostForm("description"))
	title.PosterURL = strings.TrimSpace(c.PostForm("poster_url"))
	title.TrailerURL = strings.TrimSpace(c.PostForm("trailer_url"))

	title.Rating = nil
	if v := strings.TrimSpace(c.PostForm("rating")); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 || r > 10 {
			return errors.New("Rating must be a number between 0 and 10")
		}
		title.Rating = &r
	}
	title.Year = nil
	if v := strings.TrimSpace(c.PostForm("year")); v != "" {
		y, err := strconv.ParseInt(v, 10, 16)
		if err != nil || y <= 0 {
			return errors.New("Year must be a positive number")
		}
		yy := int16(y)
		title.Year = &yy
	}

	title.GenreIDs = nil
	ctx := c.Request.Context()
	for _, name := range c.PostFormArray("genres") {
		g, err := models.GetGenreByName(ctx, db, name)
		if err != nil {
			return errors.Wrap(err, "failed to load genre")
		}
		if g == nil {
			continue
		}
		title.GenreIDs = append(title.GenreIDs, g.GenreID)
	}
	return nil
}
