package catalog

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/catalog"
)

func title(name string) *models.Title {
	return &models.Title{
		Type: models.ContentTypeMovie,
		Name: name,
	}
}

func makeTestContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestBindIndexArgs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		args := bindIndexArgs(makeTestContext(t, "/"))
		assert.Equal(t, catalog.FilterAll, args.Tab)
		assert.Equal(t, catalog.FilterAll, args.Category)
		assert.Equal(t, "", args.Query)
		assert.Equal(t, catalog.SortTitleAsc, args.Sort)
		assert.Equal(t, 1, args.Page)
	})
	t.Run("all params", func(t *testing.T) {
		args := bindIndexArgs(makeTestContext(t, "/?tab=Movie&category=Drama&q=dune&sort=rating-desc&page=3"))
		assert.Equal(t, "Movie", args.Tab)
		assert.Equal(t, "Drama", args.Category)
		assert.Equal(t, "dune", args.Query)
		assert.Equal(t, catalog.SortRatingDesc, args.Sort)
		assert.Equal(t, 3, args.Page)
	})
	t.Run("unknown tab falls back", func(t *testing.T) {
		args := bindIndexArgs(makeTestContext(t, "/?tab=Anime"))
		assert.Equal(t, catalog.FilterAll, args.Tab)
	})
	t.Run("unknown sort falls back", func(t *testing.T) {
		args := bindIndexArgs(makeTestContext(t, "/?sort=banana"))
		assert.Equal(t, catalog.SortTitleAsc, args.Sort)
	})
	t.Run("bad page falls back", func(t *testing.T) {
		args := bindIndexArgs(makeTestContext(t, "/?page=-5"))
		assert.Equal(t, 1, args.Page)
	})
}

func TestRunPipelineClampsPage(t *testing.T) {
	items := []*catalog.Item{
		{Title: title("Alpha")},
		{Title: title("Beta")},
		{Title: title("Gamma")},
	}
	args := &IndexArgs{
		Tab:      catalog.FilterAll,
		Category: catalog.FilterAll,
		Sort:     catalog.SortTitleAsc,
		Page:     99,
	}
	res := runPipeline(items, args)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 1, args.Page)
	assert.Len(t, res.Items, 3)
}
