package web

import (
	"html/template"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"

	sv "github.com/watchdeck/web-ui/services/common"
)

// Helper provides the base template functions.
type Helper struct {
	domain string
}

func NewHelper(c *cli.Context) *Helper {
	return &Helper{
		domain: c.String(sv.DomainFlag),
	}
}

func (s *Helper) FuncMap() template.FuncMap {
	return template.FuncMap{
		"domain": func() string {
			return s.domain
		},
		"naturalTime": humanize.Time,
		"intComma": func(i int) string {
			return humanize.Comma(int64(i))
		},
		"pages": func(total int) []int {
			out := make([]int, total)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}
