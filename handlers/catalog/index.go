package catalog

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/auth"
	"github.com/watchdeck/web-ui/services/catalog"
	"github.com/watchdeck/web-ui/services/web"
)

type IndexArgs struct {
	Tab      string
	Category string
	Query    string
	Sort     catalog.Sort
	Page     int
}

type IndexData struct {
	Args       *IndexArgs
	Result     *catalog.Result
	Tabs       []Tab
	Categories []string
	Sorts      []SortOption
}

func bindIndexArgs(c *gin.Context) *IndexArgs {
	tab := c.DefaultQuery("tab", catalog.FilterAll)
	if tab != catalog.FilterAll && !models.ContentType(tab).Valid() {
		tab = catalog.FilterAll
	}
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	return &IndexArgs{
		Tab:      tab,
		Category: c.DefaultQuery("category", catalog.FilterAll),
		Query:    c.Query("q"),
		Sort:     catalog.ParseSort(c.Query("sort")),
		Page:     page,
	}
}

func (s *Handler) index(c *gin.Context) {
	s.render(c, "catalog/index")
}

func (s *Handler) search(c *gin.Context) {
	s.render(c, "catalog/search")
}

func (s *Handler) render(c *gin.Context, view string) {
	u := auth.GetUserFromContext(c)
	if !u.HasAuth() {
		v := url.Values{
			"from": []string{c.Request.URL.Path},
		}
		c.Redirect(http.StatusFound, "/login?"+v.Encode())
		return
	}
	args := bindIndexArgs(c)

	data, err := s.getIndexData(c, args)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	s.tb.Build(view).HTML(http.StatusOK, web.NewContext(c).WithData(data))
}

func (s *Handler) getIndexData(c *gin.Context, args *IndexArgs) (*IndexData, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	ctx := c.Request.Context()

	titles, err := models.GetAllTitles(ctx, db)
	if err != nil {
		return nil, err
	}
	genres, err := models.GetAllGenres(ctx, db)
	if err != nil {
		return nil, err
	}

	items := catalog.CatalogItems(titles, genres)
	res := runPipeline(items, args)

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}

	return &IndexData{
		Args:       args,
		Result:     res,
		Tabs:       makeTabs(args.Tab),
		Categories: names,
		Sorts:      makeSortOptions(args.Sort),
	}, nil
}

// runPipeline applies the filter state, clamping the requested page into
// [1, totalPages] before the final run.
func runPipeline(items []*catalog.Item, args *IndexArgs) *catalog.Result {
	f := catalog.Filter{
		Type:     args.Tab,
		Category: args.Category,
		Query:    args.Query,
		Sort:     args.Sort,
		Page:     args.Page,
	}
	res := catalog.Apply(items, f)
	if res.TotalPages > 0 && args.Page > res.TotalPages {
		f.Page = res.TotalPages
		res = catalog.Apply(items, f)
		args.Page = res.Page
	}
	return res
}
