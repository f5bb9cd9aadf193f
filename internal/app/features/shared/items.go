// internal/app/features/shared/items.go
//
// Package shared builds the list-item view models used by more than one
// feature. Everything a template prints is computed here so the templates
// need no function map.
package shared

import (
	"fmt"
	"html/template"

	"github.com/dalemusser/quotebook/internal/app/system/markup"
	"github.com/dalemusser/quotebook/internal/domain/models"
)

// Avatar sizes in pixels.
const (
	SmallAvatar = 32
	LargeAvatar = 80
)

func QuoteURL(id int64) string   { return fmt.Sprintf("/quotes/%d", id) }
func UserURL(id int64) string    { return fmt.Sprintf("/users/%d", id) }
func ContextURL(id int64) string { return fmt.Sprintf("/contexts/%d", id) }

// CommentURL is the permalink of a comment on a quote.
func CommentURL(quoteID, commentID int64) string {
	return fmt.Sprintf("/quotes/%d/comments/%d", quoteID, commentID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Quotes                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

type QuoteItem struct {
	ID           int64
	URL          string
	HTML         template.HTML
	QuoteeName   string
	QuoteeURL    string
	QuoteeAvatar string
	QuoterName   string
	QuoterURL    string
	ContextName  string
	ContextURL   string
	CommentsText string
	CommentsURL  string
	Created      string
	QuoterID     int64
}

func NewQuoteItem(q models.QuoteWithUsers) QuoteItem {
	return QuoteItem{
		ID:           q.Quote.ID,
		URL:          QuoteURL(q.Quote.ID),
		HTML:         markup.QuoteHTML(q.Quote.QuoteText),
		QuoteeName:   q.Quotee.Fullname,
		QuoteeURL:    UserURL(q.Quotee.ID),
		QuoteeAvatar: markup.GravatarURL(q.Quotee.Email(), SmallAvatar),
		QuoterName:   q.Quoter.UsernameOrFullname(),
		QuoterURL:    UserURL(q.Quoter.ID),
		ContextName:  q.Context.Name,
		ContextURL:   ContextURL(q.Context.ID),
		CommentsText: markup.CommentsText(q.CommentsCount),
		CommentsURL:  QuoteURL(q.Quote.ID) + "#comments",
		Created:      markup.LongDateTime(q.Quote.CreatedAt),
		QuoterID:     q.Quoter.ID,
	}
}

func QuoteItems(qs []models.QuoteWithUsers) []QuoteItem {
	out := make([]QuoteItem, 0, len(qs))
	for _, q := range qs {
		out = append(out, NewQuoteItem(q))
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| Comments                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// CommentItem covers both comment shapes. ContextName is set for comments
// joined with their context, QuoteeName for comments joined with the quotee.
type CommentItem struct {
	ID           int64
	URL          string
	Body         template.HTML
	AuthorName   string
	AuthorURL    string
	AuthorAvatar string
	QuoteHTML    template.HTML
	QuoteURL     string
	ContextName  string
	ContextURL   string
	QuoteeName   string
	QuoteeURL    string
	Created      string
}

func commentItem(c models.Comment, quoteText string, author models.User) CommentItem {
	return CommentItem{
		ID:           c.ID,
		URL:          CommentURL(c.QuoteID, c.ID),
		Body:         markup.Markdown(c.Body, true),
		AuthorName:   author.UsernameOrFullname(),
		AuthorURL:    UserURL(author.ID),
		AuthorAvatar: markup.GravatarURL(author.Email(), SmallAvatar),
		QuoteHTML:    markup.QuoteHTML(quoteText),
		QuoteURL:     QuoteURL(c.QuoteID),
		Created:      markup.LongDateTime(c.CreatedAt),
	}
}

func CommentItems(cs []models.CommentWithQuote) []CommentItem {
	out := make([]CommentItem, 0, len(cs))
	for _, c := range cs {
		it := commentItem(c.Comment, c.QuoteText, c.User)
		it.ContextName = c.Context.Name
		it.ContextURL = ContextURL(c.Context.ID)
		out = append(out, it)
	}
	return out
}

func CommentItemsWithQuotee(cs []models.CommentWithQuotee) []CommentItem {
	out := make([]CommentItem, 0, len(cs))
	for _, c := range cs {
		it := commentItem(c.Comment, c.QuoteText, c.User)
		it.QuoteeName = c.Quotee.Fullname
		it.QuoteeURL = UserURL(c.Quotee.ID)
		out = append(out, it)
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| Contexts and users                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

type ContextItem struct {
	ID          int64
	Name        string
	URL         string
	Description template.HTML
	QuotesCount int64
}

func ContextItems(cs []models.Context) []ContextItem {
	out := make([]ContextItem, 0, len(cs))
	for _, c := range cs {
		out = append(out, ContextItem{
			ID:          c.ID,
			Name:        c.Name,
			URL:         ContextURL(c.ID),
			Description: markup.Markdown(c.Description, false),
			QuotesCount: c.QuotesCount,
		})
	}
	return out
}

type UserItem struct {
	ID     int64
	Name   string
	URL    string
	Avatar string
}

func NewUserItem(u models.User, size int) UserItem {
	return UserItem{
		ID:     u.ID,
		Name:   u.Fullname,
		URL:    UserURL(u.ID),
		Avatar: markup.GravatarURL(u.Email(), size),
	}
}

func UserItems(us []models.User) []UserItem {
	out := make([]UserItem, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserItem(u, SmallAvatar))
	}
	return out
}
