// internal/domain/models/comment.go
package models

import "time"

// Comment is a remark left by a user on a quote.
type Comment struct {
	ID        int64     `json:"id"`
	QuoteID   int64     `json:"quote_id"`
	UserID    int64     `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithQuote is a comment joined with its author, the quote text,
// and the quote's context.
type CommentWithQuote struct {
	Comment   Comment
	QuoteText string
	User      User
	Context   Context
}

// CommentWithQuotee is a comment joined with its author, the quote text,
// and the quotee. Used by feeds and the site-wide comments list.
type CommentWithQuotee struct {
	Comment   Comment
	QuoteText string
	User      User
	Quotee    User
}
