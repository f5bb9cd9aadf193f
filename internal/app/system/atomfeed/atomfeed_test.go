package atomfeed

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/quotebook/internal/domain/models"
)

func strptr(s string) *string { return &s }

func sampleQuotes() []models.QuoteWithUsers {
	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	return []models.QuoteWithUsers{
		{
			Quote:  models.Quote{ID: 7, QuoteText: "Hello there", CreatedAt: t2, UpdatedAt: t2},
			Quoter: models.User{ID: 1, Fullname: "Ann Author", Username: strptr("ann")},
			Quotee: models.User{ID: 2, Fullname: "Bob Speaker"},
		},
		{
			Quote:  models.Quote{ID: 3, QuoteText: "Earlier", CreatedAt: t1, UpdatedAt: t1},
			Quoter: models.User{ID: 2, Fullname: "Bob Speaker"},
			Quotee: models.User{ID: 1, Fullname: "Ann Author"},
		},
	}
}

func TestQuotes(t *testing.T) {
	af := Quotes("http://example.com/", Title("All quotes"), "/quotes.atom", sampleQuotes())

	if af.Title != "theQuotebook: All quotes" {
		t.Errorf("Title = %q, want %q", af.Title, "theQuotebook: All quotes")
	}
	if af.Id != "http://example.com/quotes.atom" {
		t.Errorf("Id = %q, want self URL", af.Id)
	}
	if af.Link == nil || af.Link.Rel != "self" || af.Link.Href != "http://example.com/quotes.atom" {
		t.Errorf("Link = %+v, want self link to the feed", af.Link)
	}
	if af.Updated != "2024-03-02T09:30:00Z" {
		t.Errorf("Updated = %q, want the latest entry update", af.Updated)
	}
	if len(af.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(af.Entries))
	}

	e := af.Entries[0]
	if e.Title != "Bob Speaker: Hello there" {
		t.Errorf("entry Title = %q", e.Title)
	}
	if e.Id != "http://example.com/quotes/7" {
		t.Errorf("entry Id = %q", e.Id)
	}
	if e.Author == nil || e.Author.Name != "ann" || e.Author.Uri != "http://example.com/users/1" {
		t.Errorf("entry Author = %+v, want ann with profile uri", e.Author)
	}
	if af.Entries[1].Author.Name != "Bob Speaker" {
		t.Errorf("second author = %q, want fullname fallback", af.Entries[1].Author.Name)
	}
}

func TestComments(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	af := Comments("http://example.com", Title("Comments of interest to Ann"), "/users/1/relevant_comments.atom",
		[]models.CommentWithQuotee{{
			Comment:   models.Comment{ID: 9, QuoteID: 7, UserID: 1, Body: "nice", CreatedAt: ts},
			QuoteText: "Hello there",
			User:      models.User{ID: 1, Fullname: "Ann Author"},
			Quotee:    models.User{ID: 2, Fullname: "Bob Speaker"},
		}})

	if len(af.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(af.Entries))
	}
	e := af.Entries[0]
	if want := "Ann Author on Hello there (Bob Speaker)"; e.Title != want {
		t.Errorf("entry Title = %q, want %q", e.Title, want)
	}
	if want := "http://example.com/quotes/7/comments/9"; e.Id != want {
		t.Errorf("entry Id = %q, want %q", e.Id, want)
	}
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := Write(rec, Quotes("http://example.com", Title("All quotes"), "/quotes.atom", sampleQuotes())); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, ContentType) {
		t.Errorf("Content-Type = %q, want %q", ct, ContentType)
	}
	body := rec.Body.String()
	for _, want := range []string{`<?xml version="1.0"`, `<feed xmlns="http://www.w3.org/2005/Atom">`, "Hello there"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestEmptyFeedHasUpdated(t *testing.T) {
	af := Quotes("http://example.com", Title("All quotes"), "/quotes.atom", nil)
	if af.Updated == "" {
		t.Error("empty feed has no updated timestamp")
	}
}
