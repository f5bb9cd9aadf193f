// internal/app/system/markup/bbcode.go
package markup

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

type bbRule struct {
	re   *regexp.Regexp
	repl string
}

// Applied to already-escaped text, so brackets and attribute values are
// literal here.
var bbRules = []bbRule{
	{regexp.MustCompile(`(?is)\[b\](.*?)\[/b\]`), `<strong>$1</strong>`},
	{regexp.MustCompile(`(?is)\[i\](.*?)\[/i\]`), `<em>$1</em>`},
	{regexp.MustCompile(`(?is)\[u\](.*?)\[/u\]`), `<u>$1</u>`},
	{regexp.MustCompile(`(?is)\[url=([^\]\s]+)\](.*?)\[/url\]`), `<a href="$1">$2</a>`},
	{regexp.MustCompile(`(?is)\[url\]([^\[\s]+)\[/url\]`), `<a href="$1">$1</a>`},
}

// BBCode renders the [b] [i] [u] [url] subset of BBCode as HTML. Anything
// else is shown as escaped text. Line breaks become <br/>.
func BBCode(src string) template.HTML {
	out := html.EscapeString(src)
	for _, r := range bbRules {
		out = r.re.ReplaceAllString(out, r.repl)
	}
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\n", "<br/>")
	return template.HTML(policy.Sanitize(out))
}
