package template

import (
	"html/template"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const templatesDir = "templates"

// View is the render context handed to templates.
type View interface {
	Gin() *gin.Context
}

// Helper contributes functions to every template.
type Helper interface {
	FuncMap() template.FuncMap
}

// Manager collects view registrations and compiles them against the
// multitemplate renderer on Init.
type Manager[C View] struct {
	re       multitemplate.Renderer
	funcs    template.FuncMap
	builders []*builder[C]
}

func NewManager[C View](re multitemplate.Renderer) *Manager[C] {
	return &Manager[C]{
		re:    re,
		funcs: template.FuncMap{},
	}
}

func (s *Manager[C]) WithHelper(h Helper) *Manager[C] {
	for k, v := range h.FuncMap() {
		s.funcs[k] = v
	}
	return s
}

// MustRegisterViews registers every view under templates/views matching
// pattern (without extension), e.g. "catalog/*".
func (s *Manager[C]) MustRegisterViews(pattern string) Builder[C] {
	b := &builder[C]{
		m:       s,
		pattern: pattern,
	}
	s.builders = append(s.builders, b)
	return b
}

func (s *Manager[C]) Init() error {
	for _, b := range s.builders {
		files, err := filepath.Glob(filepath.Join(templatesDir, "views", b.pattern+".html"))
		if err != nil {
			return errors.Wrapf(err, "failed to glob views for pattern %v", b.pattern)
		}
		if len(files) == 0 {
			return errors.Errorf("no views found for pattern %v", b.pattern)
		}
		for _, f := range files {
			name := strings.TrimSuffix(strings.TrimPrefix(filepath.ToSlash(f), templatesDir+"/views/"), ".html")
			var tfiles []string
			if b.layout != "" {
				tfiles = append(tfiles, filepath.Join(templatesDir, "layouts", b.layout+".html"))
			}
			tfiles = append(tfiles, f)
			s.re.AddFromFilesFuncs(name, s.funcs, tfiles...)
		}
	}
	return nil
}

type Builder[C View] interface {
	WithLayout(name string) Builder[C]
	Build(name string) *Template[C]
}

type builder[C View] struct {
	m       *Manager[C]
	pattern string
	layout  string
}

func (s *builder[C]) WithLayout(name string) Builder[C] {
	s.layout = name
	return s
}

func (s *builder[C]) Build(name string) *Template[C] {
	return &Template[C]{
		name: name,
	}
}

type Template[C View] struct {
	name string
}

func (s *Template[C]) HTML(code int, ctx C) {
	ctx.Gin().HTML(code, s.name, ctx)
}
