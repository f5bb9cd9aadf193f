// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// Page sizes used by the listing screens.
const (
	HomePageSize    = 5
	QuotesPageSize  = 10
	ListingPageSize = 20
)

// DefaultWindow is the number of sibling page links shown on each side of
// the current page.
const DefaultWindow = 2

// Page is one page of a result set.
type Page struct {
	Offset int // zero-based page index
	Start  int // zero-based index of the first item on the page
	Limit  int
}

// Number returns the 1-based page number for display.
func (p Page) Number() int { return p.Offset + 1 }

// Pages describes a whole paginated result set.
type Pages struct {
	TotalItems int
	PageSize   int
	PageCount  int
}

// NewPages computes the page count for totalItems split into pages of
// pageSize. There is always at least one page. pageSize < 1 is a
// programmer error and panics.
func NewPages(totalItems, pageSize int) Pages {
	if pageSize < 1 {
		panic("paging: page size must be at least 1")
	}
	if totalItems < 0 {
		totalItems = 0
	}
	count := (totalItems + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}
	return Pages{TotalItems: totalItems, PageSize: pageSize, PageCount: count}
}

// Limit returns the page size, for LIMIT clauses.
func (ps Pages) Limit() int { return ps.PageSize }

// WithOffset returns the page at the requested offset, clamped into
// [0, PageCount-1].
func (ps Pages) WithOffset(requested int) Page {
	off := requested
	if off < 0 {
		off = 0
	}
	if off > ps.PageCount-1 {
		off = ps.PageCount - 1
	}
	return Page{Offset: off, Start: off * ps.PageSize, Limit: ps.PageSize}
}

// Kind tags a PageOrGap entry.
type Kind int

const (
	PageLink Kind = iota
	CurrentPage
	Gap
)

// PageOrGap is one entry of the rendered page-link list.
// Page is the zero value for Gap entries.
type PageOrGap struct {
	Kind Kind
	Page Page
}

func (e PageOrGap) IsLink() bool    { return e.Kind == PageLink }
func (e PageOrGap) IsCurrent() bool { return e.Kind == CurrentPage }
func (e PageOrGap) IsGap() bool     { return e.Kind == Gap }

// State is the pagination view model handed to templates.
type State struct {
	Pages   Pages
	Current Page
	Window  int
}

// NewState builds a State for totalItems at the requested page offset
// using DefaultWindow.
func NewState(totalItems, pageSize, requested int) State {
	ps := NewPages(totalItems, pageSize)
	return State{Pages: ps, Current: ps.WithOffset(requested), Window: DefaultWindow}
}

// Links returns the windowed list of page links with gap markers. A run of
// exactly one elided page is rendered as that page rather than a gap.
func (s State) Links() []PageOrGap {
	cur := s.Current.Offset
	win := s.Window
	count := s.Pages.PageCount

	links := make([]PageOrGap, 0, 2*win+5)
	page := func(off int) PageOrGap {
		return PageOrGap{Kind: PageLink, Page: s.Pages.WithOffset(off)}
	}

	first := 0
	if cur > win {
		links = append(links, page(0))
		if cur > win+1 {
			links = append(links, PageOrGap{Kind: Gap})
		}
		first = cur - win
	}
	for off := first; off < cur; off++ {
		links = append(links, page(off))
	}

	links = append(links, PageOrGap{Kind: CurrentPage, Page: s.Current})

	end := cur + win + 1
	if end > count {
		end = count
	}
	for off := cur + 1; off < end; off++ {
		links = append(links, page(off))
	}

	if cur+win+1 < count {
		if cur+win+2 < count {
			links = append(links, PageOrGap{Kind: Gap})
		}
		links = append(links, page(count-1))
	}
	return links
}

// HasPrev reports whether a previous page exists.
func (s State) HasPrev() bool { return s.Current.Offset > 0 }

// HasNext reports whether a next page exists.
func (s State) HasNext() bool { return s.Current.Offset < s.Pages.PageCount-1 }

func (s State) PrevOffset() int { return s.Current.Offset - 1 }
func (s State) NextOffset() int { return s.Current.Offset + 1 }

// Multiple reports whether there is more than one page, so templates can
// skip the pager entirely for short lists.
func (s State) Multiple() bool { return s.Pages.PageCount > 1 }

// Range holds the 1-based display range of the items on the current page.
type Range struct {
	First int // 0 if there are no items
	Last  int
	Total int
}

// ShowingRange computes the "showing X–Y of Z" values for the current page.
func (s State) ShowingRange() Range {
	total := s.Pages.TotalItems
	if total == 0 {
		return Range{}
	}
	last := s.Current.Start + s.Pages.PageSize
	if last > total {
		last = total
	}
	return Range{First: s.Current.Start + 1, Last: last, Total: total}
}

// ParsePage extracts the zero-based "page" query parameter.
// Returns 0 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
