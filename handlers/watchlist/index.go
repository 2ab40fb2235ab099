package watchlist

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

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
	Categories []string
	Watched    bool
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

func (s *Handler) list(c *gin.Context) {
	s.index(c, models.RelationFlagWantToWatch, "watchlist/list")
}

func (s *Handler) watched(c *gin.Context) {
	s.index(c, models.RelationFlagWatched, "watchlist/watched")
}

func (s *Handler) index(c *gin.Context, flag models.RelationFlag, view string) {
	u := auth.GetUserFromContext(c)
	if !u.HasAuth() {
		v := url.Values{
			"from": []string{c.Request.URL.Path},
		}
		c.Redirect(http.StatusFound, "/login?"+v.Encode())
		return
	}
	args := bindIndexArgs(c)

	data, err := s.getIndexData(c, u.ID, flag, args)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	s.tb.Build(view).HTML(http.StatusOK, web.NewContext(c).WithData(data))
}

func (s *Handler) getIndexData(c *gin.Context, uID uuid.UUID, flag models.RelationFlag, args *IndexArgs) (*IndexData, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	ctx := c.Request.Context()

	relations, err := models.GetUserTitles(ctx, db, uID, flag)
	if err != nil {
		return nil, err
	}
	items, err := s.makeItems(ctx, db, relations)
	if err != nil {
		return nil, err
	}

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

	return &IndexData{
		Args:       args,
		Result:     res,
		Categories: relationCategories(relations),
		Watched:    flag == models.RelationFlagWatched,
	}, nil
}

// makeItems resolves relation title ids against the catalog. Relations whose
// title has been removed are dropped from the view.
func (s *Handler) makeItems(ctx context.Context, db *pg.DB, relations []*models.UserTitle) ([]*catalog.Item, error) {
	ids := make([]uuid.UUID, len(relations))
	for i, r := range relations {
		ids[i] = r.TitleID
	}
	titles, err := models.GetTitlesByIDs(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	return catalog.ListItems(relations, titles), nil
}

// relationCategories collects the distinct stored categories for the filter
// select, in first-seen order.
func relationCategories(relations []*models.UserTitle) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range relations {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	return out
}
