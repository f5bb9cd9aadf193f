// internal/app/system/markup/filters.go
package markup

import (
	"crypto/md5"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// QuoteMarksIfNeeded wraps text in double quotes unless it already
// contains one.
func QuoteMarksIfNeeded(text string) string {
	if strings.Contains(text, `"`) {
		return text
	}
	return `"` + text + `"`
}

// QuoteHTML is the display form of a quote: quote marks if needed, then
// BBCode.
func QuoteHTML(text string) template.HTML {
	return BBCode(QuoteMarksIfNeeded(text))
}

// CommentsText describes a comment count.
func CommentsText(n int64) string {
	switch n {
	case 0:
		return "No comments (yet)."
	case 1:
		return "1 comment."
	default:
		return fmt.Sprintf("%d comments.", n)
	}
}

// LongDateTime formats t like "Friday 01 March 2024 at 12:00 pm UTC".
func LongDateTime(t time.Time) string {
	return t.UTC().Format("Monday 02 January 2006 at 03:04 pm MST")
}

// GravatarURL returns the avatar image URL for an email address.
func GravatarURL(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&r=pg&d=identicon", sum, size)
}
