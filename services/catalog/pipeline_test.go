package catalog

import (
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchdeck/web-ui/models"
)

func title(name string, opts ...func(*models.Title)) *models.Title {
	t := &models.Title{
		TitleID: uuid.NewV4(),
		Type:    models.ContentTypeMovie,
		Name:    name,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func withYear(y int16) func(*models.Title) {
	return func(t *models.Title) { t.Year = &y }
}

func withRating(r float64) func(*models.Title) {
	return func(t *models.Title) { t.Rating = &r }
}

func withType(ct models.ContentType) func(*models.Title) {
	return func(t *models.Title) { t.Type = ct }
}

func names(items []*Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Title.Name)
	}
	return out
}

func plainItems(titles ...*models.Title) []*Item {
	return CatalogItems(titles, nil)
}

func TestApplySort(t *testing.T) {
	zeta := title("Zeta", withYear(2020))
	alpha := title("Alpha", withYear(1999))
	mid := title("Mid", withYear(2010))

	t.Run("title ascending", func(t *testing.T) {
		res := Apply(plainItems(zeta, alpha, mid), Filter{Sort: SortTitleAsc})
		assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, names(res.Items))
	})

	t.Run("year descending", func(t *testing.T) {
		res := Apply(plainItems(zeta, alpha, mid), Filter{Sort: SortYearDesc})
		assert.Equal(t, []string{"Zeta", "Mid", "Alpha"}, names(res.Items))
	})

	t.Run("year ascending", func(t *testing.T) {
		res := Apply(plainItems(zeta, alpha, mid), Filter{Sort: SortYearAsc})
		assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, names(res.Items))
	})

	t.Run("missing year sorts as zero", func(t *testing.T) {
		noYear := title("NoYear")
		res := Apply(plainItems(zeta, noYear), Filter{Sort: SortYearDesc})
		assert.Equal(t, []string{"Zeta", "NoYear"}, names(res.Items))
	})

	t.Run("missing rating sorts below any positive rating", func(t *testing.T) {
		rated := title("Rated", withRating(0.1))
		unrated := title("Unrated")
		res := Apply(plainItems(unrated, rated), Filter{Sort: SortRatingDesc})
		assert.Equal(t, []string{"Rated", "Unrated"}, names(res.Items))
	})

	t.Run("zero rating ties with missing and keeps input order", func(t *testing.T) {
		zero := title("Zero", withRating(0))
		unrated := title("Unrated")
		res := Apply(plainItems(zero, unrated), Filter{Sort: SortRatingDesc})
		assert.Equal(t, []string{"Zero", "Unrated"}, names(res.Items))

		res = Apply(plainItems(unrated, zero), Filter{Sort: SortRatingDesc})
		assert.Equal(t, []string{"Unrated", "Zero"}, names(res.Items))
	})

	t.Run("stable on equal keys", func(t *testing.T) {
		a := title("A", withYear(2000))
		b := title("B", withYear(2000))
		c := title("C", withYear(2000))
		res := Apply(plainItems(b, c, a), Filter{Sort: SortYearDesc})
		assert.Equal(t, []string{"B", "C", "A"}, names(res.Items))
	})
}

func TestApplyFilters(t *testing.T) {
	action := &models.Genre{GenreID: uuid.NewV4(), Name: "Action"}
	drama := &models.Genre{GenreID: uuid.NewV4(), Name: "Drama"}
	genres := []*models.Genre{action, drama}

	heat := title("Heat", withType(models.ContentTypeMovie))
	heat.GenreIDs = []uuid.UUID{action.GenreID}
	dark := title("Dark", withType(models.ContentTypeWebSeries))
	dark.GenreIDs = []uuid.UUID{drama.GenreID}
	wild := title("Wildlife", withType(models.ContentTypeDocumentary))

	items := CatalogItems([]*models.Title{heat, dark, wild}, genres)

	t.Run("content type tab", func(t *testing.T) {
		res := Apply(items, Filter{Type: "Web Series"})
		assert.Equal(t, []string{"Dark"}, names(res.Items))
	})

	t.Run("all tab keeps everything", func(t *testing.T) {
		res := Apply(items, Filter{Type: FilterAll})
		assert.Len(t, res.Items, 3)
	})

	t.Run("category by genre membership", func(t *testing.T) {
		res := Apply(items, Filter{Category: "Action"})
		assert.Equal(t, []string{"Heat"}, names(res.Items))
	})

	t.Run("unknown category yields no results", func(t *testing.T) {
		res := Apply(items, Filter{Category: "Noir"})
		assert.Empty(t, res.Items)
		assert.Zero(t, res.TotalPages)
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		res := Apply(items, Filter{Query: "wILD"})
		assert.Equal(t, []string{"Wildlife"}, names(res.Items))
	})

	t.Run("empty search matches everything", func(t *testing.T) {
		res := Apply(items, Filter{Query: ""})
		assert.Len(t, res.Items, 3)
	})

	t.Run("filters combine", func(t *testing.T) {
		res := Apply(items, Filter{Type: "Movie", Category: "Action", Query: "heat"})
		assert.Equal(t, []string{"Heat"}, names(res.Items))
	})

	t.Run("empty catalog", func(t *testing.T) {
		res := Apply(nil, Filter{})
		assert.Empty(t, res.Items)
		assert.Zero(t, res.Total)
		assert.Zero(t, res.TotalPages)
	})
}

func TestApplyPagination(t *testing.T) {
	var titles []*models.Title
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		titles = append(titles, title(n))
	}
	items := plainItems(titles...)

	t.Run("second page slice", func(t *testing.T) {
		res := Apply(items, Filter{Page: 2, PageSize: 2})
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, 5, res.Total)
		assert.Equal(t, []string{"C", "D"}, names(res.Items))
	})

	t.Run("last partial page", func(t *testing.T) {
		res := Apply(items, Filter{Page: 3, PageSize: 2})
		assert.Equal(t, []string{"E"}, names(res.Items))
	})

	t.Run("page beyond range is empty not an error", func(t *testing.T) {
		res := Apply(items, Filter{Page: 9, PageSize: 2})
		assert.Empty(t, res.Items)
		assert.Equal(t, 3, res.TotalPages)
	})

	t.Run("page zero treated as first", func(t *testing.T) {
		res := Apply(items, Filter{Page: 0, PageSize: 2})
		assert.Equal(t, []string{"A", "B"}, names(res.Items))
	})

	t.Run("default page size", func(t *testing.T) {
		res := Apply(items, Filter{Page: 1})
		assert.Len(t, res.Items, 5)
		assert.Equal(t, 1, res.TotalPages)
	})

	t.Run("total pages consistent with filtered count", func(t *testing.T) {
		res := Apply(items, Filter{Query: "A", PageSize: 2})
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, 1, res.TotalPages)
	})
}

func TestListItems(t *testing.T) {
	uID := uuid.NewV4()
	heat := title("Heat")
	dark := title("Dark")

	relHeat := &models.UserTitle{UserID: uID, TitleID: heat.TitleID, WantToWatch: true, Category: "Action"}
	relGone := &models.UserTitle{UserID: uID, TitleID: uuid.NewV4(), WantToWatch: true, Category: "Action"}
	relDark := &models.UserTitle{UserID: uID, TitleID: dark.TitleID, Watched: true, Category: "Others"}

	items := ListItems([]*models.UserTitle{relHeat, relGone, relDark}, []*models.Title{heat, dark})
	require.Len(t, items, 2, "relation with a missing title must be dropped")

	t.Run("category filters against the relation category", func(t *testing.T) {
		res := Apply(items, Filter{Category: "Action"})
		assert.Equal(t, []string{"Heat"}, names(res.Items))

		res = Apply(items, Filter{Category: "Others"})
		assert.Equal(t, []string{"Dark"}, names(res.Items))
	})
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortYearDesc, ParseSort("year-desc"))
	assert.Equal(t, SortTitleAsc, ParseSort(""))
	assert.Equal(t, SortTitleAsc, ParseSort("bogus"))
}
