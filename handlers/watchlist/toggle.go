package watchlist

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/auth"
	"github.com/watchdeck/web-ui/services/watchlist"
	"github.com/watchdeck/web-ui/services/web"
)

type CategoryPickerData struct {
	Title      *models.Title
	Categories []string
}

func (s *Handler) toggleWantToWatch(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	title, err := s.bindTitle(c)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	if title == nil {
		c.Status(http.StatusNotFound)
		return
	}

	category, _ := c.GetPostForm("category")
	d, err := s.store.ToggleWantToWatch(c.Request.Context(), u.ID, title, category)
	if errors.Is(err, watchlist.ErrCategoryRequired) {
		// the create is deferred until the client re-posts with a category
		s.categoryPicker(c, u, title)
		return
	}
	s.finishToggle(c, d, err)
}

func (s *Handler) toggleWatched(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	title, err := s.bindTitle(c)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	if title == nil {
		c.Status(http.StatusNotFound)
		return
	}

	d, err := s.store.ToggleWatched(c.Request.Context(), u.ID, title)
	s.finishToggle(c, d, err)
}

func (s *Handler) bindTitle(c *gin.Context) (*models.Title, error) {
	tID, _ := c.GetPostForm("title_id")
	titleID, err := uuid.FromString(tID)
	if err != nil {
		return nil, errors.Wrap(err, "bad title id")
	}
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.GetTitleByID(c.Request.Context(), db, titleID)
}

// categoryPicker answers a want-to-watch toggle that has no category to
// create the relation with. Browsers get the picker form to re-post,
// XHR clients get the machine-readable variant.
func (s *Handler) categoryPicker(c *gin.Context, u *auth.User, title *models.Title) {
	if wantsJSON(c) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"categoryRequired": true,
			"titleId":          title.TitleID,
		})
		return
	}
	s.tb.Build("watchlist/category").HTML(http.StatusUnprocessableEntity, web.NewContext(c).WithData(&CategoryPickerData{
		Title:      title,
		Categories: s.knownCategories(c, u),
	}))
}

func wantsJSON(c *gin.Context) bool {
	return c.Request.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// knownCategories offers the user's existing categories plus the default one.
func (s *Handler) knownCategories(c *gin.Context, u *auth.User) []string {
	out := []string{watchlist.DefaultCategory}
	if s.pg == nil {
		return out
	}
	db := s.pg.Get()
	if db == nil {
		return out
	}
	relations, err := models.GetUserTitles(c.Request.Context(), db, u.ID, models.RelationFlagAny)
	if err != nil {
		log.WithError(err).Error("failed to load categories")
		return out
	}
	for _, cat := range relationCategories(relations) {
		if cat != watchlist.DefaultCategory {
			out = append(out, cat)
		}
	}
	return out
}

func (s *Handler) finishToggle(c *gin.Context, d *watchlist.Decision, err error) {
	if errors.Is(err, watchlist.ErrToggleInFlight) {
		web.RedirectWithFailureAndMessage(c, "Hold on, still working on the previous change")
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to toggle relation")
		web.RedirectWithFailureAndMessage(c, "Something went wrong, nothing was changed")
		return
	}
	web.RedirectWithSuccessAndMessage(c, d.Message)
}
