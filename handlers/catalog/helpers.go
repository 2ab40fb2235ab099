package catalog

import (
	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/catalog"
)

type Tab struct {
	Value  string
	Active bool
}

func makeTabs(active string) []Tab {
	tabs := []Tab{{Value: catalog.FilterAll}}
	for _, ct := range models.ContentTypes {
		tabs = append(tabs, Tab{Value: string(ct)})
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].Value == active
	}
	return tabs
}

type SortOption struct {
	Sort     catalog.Sort
	Title    string
	Selected bool
}

func makeSortOptions(selected catalog.Sort) []SortOption {
	opts := make([]SortOption, 0, len(catalog.Sorts))
	for _, s := range catalog.Sorts {
		opts = append(opts, SortOption{
			Sort:     s,
			Title:    s.Title(),
			Selected: s == selected,
		})
	}
	return opts
}
