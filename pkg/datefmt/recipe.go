package datefmt

import (
	"io"
	"strings"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
	"github.com/valyala/fasttemplate"
)

// placeholder is the tag replaced by the rendered subject in template recipes.
const placeholder = "expr"

// Recipe describes how a dialect emulates a character it cannot format natively.
// The two implementations are *Template and *Structured.
type Recipe interface {
	// Describe returns a short human-readable form of the recipe.
	Describe() string

	recipe()
}

// Template is SQL text in which every {expr} is replaced by the rendered subject.
type Template struct {
	Source string
	tpl    *fasttemplate.Template
}

func newTemplate(source string) *Template {
	return &Template{Source: source, tpl: fasttemplate.New(source, "{", "}")}
}

// Describe implements Recipe.
func (t *Template) Describe() string { return t.Source }

func (*Template) recipe() {}

// Placeholders returns how many times the subject is substituted.
func (t *Template) Placeholders() int {
	return strings.Count(t.Source, "{"+placeholder+"}")
}

// Render substitutes subjectSQL into every placeholder.
func (t *Template) Render(subjectSQL string) string {
	return t.tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if tag == placeholder {
			return w.Write([]byte(subjectSQL))
		}
		return w.Write([]byte("{" + tag + "}"))
	})
}

// Structured builds an expression tree around the subject.
type Structured struct {
	Name    string
	Factory func(subject core.Expr) core.Expr
}

// Describe implements Recipe.
func (s *Structured) Describe() string { return s.Name }

func (*Structured) recipe() {}

// Build materializes a recipe for a subject. Template recipes become
// pre-rendered SQL, structured recipes stay a tree until emitted.
func Build(r Recipe, g core.Grammar, subject core.Expr) core.Expr {
	switch r := r.(type) {
	case *Template:
		return expr.Raw(r.Render(subject.SQL(g)))
	case *Structured:
		return r.Factory(subject)
	default:
		panic("datefmt: unknown recipe type")
	}
}
