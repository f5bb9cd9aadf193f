// Package atomfeed builds the site's Atom feeds for quotes and comments.
package atomfeed

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/gorilla/feeds"
)

// ContentType is the media type of every feed response.
const ContentType = "application/atom+xml"

// SiteName prefixes every feed title.
const SiteName = "theQuotebook"

// Title returns the feed title for a subject, e.g. "theQuotebook: All quotes".
func Title(subject string) string {
	return SiteName + ": " + subject
}

// Quotes builds a feed with one entry per quote. selfPath is the feed's
// own path, e.g. "/quotes.atom".
func Quotes(baseURL, title, selfPath string, quotes []models.QuoteWithUsers) *feeds.AtomFeed {
	base := strings.TrimRight(baseURL, "/")
	f := &feeds.Feed{
		Title: title,
		Link:  &feeds.Link{Href: base + strings.TrimSuffix(selfPath, ".atom")},
	}

	authors := make([]feeds.AtomPerson, 0, len(quotes))
	for _, q := range quotes {
		url := fmt.Sprintf("%s/quotes/%d", base, q.Quote.ID)
		f.Items = append(f.Items, &feeds.Item{
			Id:      url,
			Title:   q.Quotee.Fullname + ": " + q.Quote.QuoteText,
			Link:    &feeds.Link{Href: url, Rel: "alternate"},
			Created: q.Quote.CreatedAt,
			Updated: q.Quote.UpdatedAt,
			Content: q.Quote.QuoteText,
		})
		authors = append(authors, feeds.AtomPerson{
			Name: q.Quoter.UsernameOrFullname(),
			Uri:  fmt.Sprintf("%s/users/%d", base, q.Quoter.ID),
		})
	}
	return finish(f, base+selfPath, authors)
}

// Comments builds a feed with one entry per comment.
func Comments(baseURL, title, selfPath string, comments []models.CommentWithQuotee) *feeds.AtomFeed {
	base := strings.TrimRight(baseURL, "/")
	f := &feeds.Feed{
		Title: title,
		Link:  &feeds.Link{Href: base + strings.TrimSuffix(selfPath, ".atom")},
	}

	authors := make([]feeds.AtomPerson, 0, len(comments))
	for _, c := range comments {
		url := fmt.Sprintf("%s/quotes/%d/comments/%d", base, c.Comment.QuoteID, c.Comment.ID)
		f.Items = append(f.Items, &feeds.Item{
			Id: url,
			Title: fmt.Sprintf("%s on %s (%s)",
				c.User.UsernameOrFullname(), c.QuoteText, c.Quotee.Fullname),
			Link:    &feeds.Link{Href: url, Rel: "alternate"},
			Created: c.Comment.CreatedAt,
			Updated: c.Comment.CreatedAt,
			Content: c.Comment.Body,
		})
		authors = append(authors, feeds.AtomPerson{
			Name: c.User.UsernameOrFullname(),
			Uri:  fmt.Sprintf("%s/users/%d", base, c.User.ID),
		})
	}
	return finish(f, base+selfPath, authors)
}

// finish converts f to its Atom form, adds the self link, and attaches
// per-entry authors with profile URIs.
func finish(f *feeds.Feed, selfURL string, authors []feeds.AtomPerson) *feeds.AtomFeed {
	f.Id = selfURL
	f.Updated = latest(f.Items)

	af := (&feeds.Atom{Feed: f}).AtomFeed()
	af.Id = selfURL
	af.Link = &feeds.AtomLink{Href: selfURL, Rel: "self", Type: ContentType}
	for i, e := range af.Entries {
		if i < len(authors) {
			e.Author = &feeds.AtomAuthor{AtomPerson: authors[i]}
		}
	}
	return af
}

// latest is the most recent entry update; an empty feed is "now".
func latest(items []*feeds.Item) time.Time {
	var newest time.Time
	for _, it := range items {
		t := it.Updated
		if t.IsZero() {
			t = it.Created
		}
		if t.After(newest) {
			newest = t
		}
	}
	if newest.IsZero() {
		return time.Now().UTC()
	}
	return newest
}

// Write renders af as an XML document.
func Write(w http.ResponseWriter, af *feeds.AtomFeed) error {
	w.Header().Set("Content-Type", ContentType+"; charset=utf-8")
	if err := feeds.WriteXML(af, w); err != nil {
		return fmt.Errorf("atomfeed: write: %w", err)
	}
	return nil
}
