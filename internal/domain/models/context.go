// internal/domain/models/context.go
package models

import "time"

// Context is a named topic that quotes and members belong to.
type Context struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	QuotesCount int64     `json:"quotes_count"` // computed, not stored
}
