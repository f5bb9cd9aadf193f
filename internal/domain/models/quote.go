// internal/domain/models/quote.go
package models

import "time"

// Quote is something a quotee said, recorded by a quoter.
type Quote struct {
	ID        int64     `json:"id"`
	QuoteText string    `json:"quote_text"`
	ContextID int64     `json:"context_id"`
	QuoterID  int64     `json:"quoter_id"`
	QuoteeID  int64     `json:"quotee_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Hidden    bool      `json:"hidden"`
}

// QuoteWithUsers is a quote joined with its quoter, quotee, and context.
// The joined Context carries no quotes count.
type QuoteWithUsers struct {
	Quote         Quote
	Quoter        User
	Quotee        User
	Context       Context
	CommentsCount int64
}
