package catalog

import (
	goflag "flag"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/watchdeck/web-ui/services/catalog"
	"github.com/watchdeck/web-ui/services/template"
	"github.com/watchdeck/web-ui/services/web"
)

// renderEngine compiles the real view tree so field drift between templates
// and handler data structs fails the test instead of the live request.
func renderEngine(t *testing.T, pattern string) (*gin.Engine, template.Builder[*web.Context]) {
	t.Helper()
	t.Chdir("../..")
	gin.SetMode(gin.TestMode)

	re := multitemplate.NewRenderer()
	r := gin.New()
	r.HTMLRender = re
	r.Use(sessions.Sessions("session", cookie.NewStore([]byte("test"))))

	set := goflag.NewFlagSet("test", 0)
	c := cli.NewContext(cli.NewApp(), set, nil)
	tm := template.NewManager[*web.Context](re).WithHelper(web.NewHelper(c))
	tb := tm.MustRegisterViews(pattern).WithLayout("main")
	require.NoError(t, tm.Init())
	return r, tb
}

func serveView(t *testing.T, r *gin.Engine, tb template.Builder[*web.Context], view string, data any) *httptest.ResponseRecorder {
	t.Helper()
	r.GET("/render/"+view, func(c *gin.Context) {
		tb.Build(view).HTML(http.StatusOK, web.NewContext(c).WithData(data))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/render/"+view, nil))
	return w
}

func makeIndexData() *IndexData {
	items := []*catalog.Item{
		{Title: title("Alpha"), Categories: []string{"Drama"}},
		{Title: title("Beta")},
	}
	args := &IndexArgs{
		Tab:      catalog.FilterAll,
		Category: catalog.FilterAll,
		Query:    "al",
		Sort:     catalog.SortTitleAsc,
		Page:     1,
	}
	return &IndexData{
		Args:       args,
		Result:     catalog.Apply(items, catalog.Filter{Type: args.Tab, Category: args.Category, Sort: args.Sort, Page: 1}),
		Tabs:       makeTabs(args.Tab),
		Categories: []string{"Drama", "Comedy"},
		Sorts:      makeSortOptions(args.Sort),
	}
}

func TestRenderIndexView(t *testing.T) {
	r, tb := renderEngine(t, "catalog/*")
	w := serveView(t, r, tb, "catalog/index", makeIndexData())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alpha")
	assert.Contains(t, w.Body.String(), catalog.SortTitleAsc.Title())
}

func TestRenderSearchView(t *testing.T) {
	r, tb := renderEngine(t, "catalog/*")
	w := serveView(t, r, tb, "catalog/search", makeIndexData())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alpha")
	assert.Contains(t, w.Body.String(), catalog.SortTitleAsc.Title())
}
