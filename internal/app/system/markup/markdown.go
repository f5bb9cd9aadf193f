// Package markup turns user-entered quote and comment text into safe HTML.
//
// Comments are Markdown restricted to emphasis, strong, and links; every
// other construct is reduced to its text. Quote text uses a small BBCode
// subset. Both outputs pass through a bluemonday policy before reaching a
// template.
package markup

import (
	"bytes"
	"html"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// paragraphBreak separates paragraphs when newlines are allowed.
const paragraphBreak = "<br/><br/>"

var (
	md     = goldmark.New()
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("em", "strong", "u", "br")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowStandardURLs()
	return p
}

// Markdown renders src as restricted inline HTML. With newlines, paragraphs
// are joined by two line breaks; without, by a single space.
func Markdown(src string, newlines bool) template.HTML {
	return template.HTML(policy.Sanitize(renderMarkdown(src, newlines)))
}

func renderMarkdown(src string, newlines bool) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	betweenParagraphs := false

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph:
			if entering {
				if betweenParagraphs {
					if newlines {
						buf.WriteString(paragraphBreak)
					} else {
						buf.WriteString(" ")
					}
				}
			} else {
				betweenParagraphs = true
			}

		case *ast.Emphasis:
			tag := "em"
			if node.Level >= 2 {
				tag = "strong"
			}
			if entering {
				buf.WriteString("<" + tag + ">")
			} else {
				buf.WriteString("</" + tag + ">")
			}

		case *ast.Link:
			if entering {
				buf.WriteString(`<a href="`)
				buf.WriteString(html.EscapeString(string(node.Destination)))
				buf.WriteString(`"`)
				if len(node.Title) > 0 {
					buf.WriteString(` title="`)
					buf.WriteString(html.EscapeString(string(node.Title)))
					buf.WriteString(`"`)
				}
				buf.WriteString(">")
			} else {
				buf.WriteString("</a>")
			}

		case *ast.AutoLink:
			if entering {
				url := html.EscapeString(string(node.URL(source)))
				buf.WriteString(`<a href="` + url + `">` + url + "</a>")
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeSpan:
			buf.WriteString("`")

		case *ast.Text:
			if entering {
				buf.WriteString(html.EscapeString(string(node.Segment.Value(source))))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteString(" ")
				}
			}

		case *ast.String:
			if entering {
				buf.WriteString(html.EscapeString(string(node.Value)))
			}

		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}
