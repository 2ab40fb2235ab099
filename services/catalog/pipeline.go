package catalog

import (
	"sort"
	"strings"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/watchdeck/web-ui/models"
)

const (
	// PageSize is the number of items per rendered page.
	PageSize = 15

	// FilterAll disables the type or category filter stage.
	FilterAll = "All"
)

type Sort string

const (
	SortTitleAsc   Sort = "title-asc"
	SortYearDesc   Sort = "year-desc"
	SortYearAsc    Sort = "year-asc"
	SortRatingDesc Sort = "rating-desc"
	SortRatingAsc  Sort = "rating-asc"
)

func (s Sort) String() string {
	return string(s)
}

func (s Sort) Title() string {
	switch s {
	case SortYearDesc:
		return "Newest First"
	case SortYearAsc:
		return "Oldest First"
	case SortRatingDesc:
		return "Highest Rating"
	case SortRatingAsc:
		return "Lowest Rating"
	default:
		return "Alphabetical"
	}
}

var Sorts = []Sort{SortTitleAsc, SortYearDesc, SortYearAsc, SortRatingDesc, SortRatingAsc}

// ParseSort maps a query value to a sort order, falling back to the
// alphabetical default for anything unknown.
func ParseSort(v string) Sort {
	for _, s := range Sorts {
		if string(s) == v {
			return s
		}
	}
	return SortTitleAsc
}

// Item is one pipeline entry. Categories holds the names the item belongs to
// for category filtering: the title's genre names on catalog views, the
// relation's stored category on list views.
type Item struct {
	Title      *models.Title
	Categories []string
}

func (s *Item) inCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Filter is the user-selected view state.
type Filter struct {
	Type     string // content type tab, FilterAll or a models.ContentType value
	Category string // FilterAll or a category name
	Query    string // case-insensitive substring over the title name
	Sort     Sort
	Page     int // 1-based, clamped by the caller
	PageSize int // defaults to PageSize when 0
}

type Result struct {
	Items      []*Item
	Total      int
	TotalPages int
	Page       int
}

// CatalogItems builds the pipeline working set from the full catalog,
// resolving each title's genre ids to names for category filtering.
func CatalogItems(titles []*models.Title, genres []*models.Genre) []*Item {
	names := make(map[uuid.UUID]string, len(genres))
	for _, g := range genres {
		names[g.GenreID] = g.Name
	}
	items := make([]*Item, 0, len(titles))
	for _, t := range titles {
		var cats []string
		for _, id := range t.GenreIDs {
			if n, ok := names[id]; ok {
				cats = append(cats, n)
			}
		}
		items = append(items, &Item{Title: t, Categories: cats})
	}
	return items
}

// ListItems builds the working set from a user's relations. Relations
// pointing at titles no longer in the catalog are dropped silently.
func ListItems(relations []*models.UserTitle, titles []*models.Title) []*Item {
	byID := make(map[uuid.UUID]*models.Title, len(titles))
	for _, t := range titles {
		byID[t.TitleID] = t
	}
	var items []*Item
	for _, r := range relations {
		t, ok := byID[r.TitleID]
		if !ok {
			continue
		}
		items = append(items, &Item{Title: t, Categories: []string{r.Category}})
	}
	return items
}

// Apply runs the fixed filter → sort → paginate pipeline. It is pure: the
// input slice is not mutated and identical inputs produce identical output.
func Apply(items []*Item, f Filter) *Result {
	filtered := make([]*Item, 0, len(items))
	query := strings.ToLower(f.Query)
	for _, it := range items {
		if f.Type != "" && f.Type != FilterAll && string(it.Title.Type) != f.Type {
			continue
		}
		if f.Category != "" && f.Category != FilterAll && !it.inCategory(f.Category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(it.Title.Name), query) {
			continue
		}
		filtered = append(filtered, it)
	}

	sortItems(filtered, f.Sort)

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = PageSize
	}
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	page := f.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Result{
		Items:      filtered[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

// sortItems orders by the single sort key. The sort is stable: equal keys
// keep their pre-sort relative order. Missing year/rating compare as 0.
func sortItems(items []*Item, s Sort) {
	switch s {
	case SortYearDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return yearOf(items[i]) > yearOf(items[j])
		})
	case SortYearAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return yearOf(items[i]) < yearOf(items[j])
		})
	case SortRatingDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return ratingOf(items[i]) > ratingOf(items[j])
		})
	case SortRatingAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return ratingOf(items[i]) < ratingOf(items[j])
		})
	default:
		cl := collate.New(language.Und)
		sort.SliceStable(items, func(i, j int) bool {
			return cl.CompareString(items[i].Title.Name, items[j].Title.Name) < 0
		})
	}
}

func yearOf(it *Item) int16 {
	if it.Title.Year == nil {
		return 0
	}
	return *it.Title.Year
}

func ratingOf(it *Item) float64 {
	if it.Title.Rating == nil {
		return 0
	}
	return *it.Title.Rating
}
