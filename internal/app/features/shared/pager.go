// internal/app/features/shared/pager.go
package shared

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/go-chi/chi/v5"
)

// PagerLink is one entry in the rendered page list.
type PagerLink struct {
	Label   string
	URL     string
	Current bool
	Gap     bool
}

// Pager is the template-ready form of a paging.State.
type Pager struct {
	Multiple bool
	PrevURL  string // empty on the first page
	NextURL  string // empty on the last page
	Links    []PagerLink
	Range    paging.Range
}

// PageURL returns basePath for the first page and basePath?page=N otherwise.
func PageURL(basePath string, offset int) string {
	if offset <= 0 {
		return basePath
	}
	return basePath + "?page=" + strconv.Itoa(offset)
}

// NewPager turns s into links under basePath.
func NewPager(s paging.State, basePath string) Pager {
	p := Pager{Multiple: s.Multiple(), Range: s.ShowingRange()}
	if s.HasPrev() {
		p.PrevURL = PageURL(basePath, s.PrevOffset())
	}
	if s.HasNext() {
		p.NextURL = PageURL(basePath, s.NextOffset())
	}
	for _, e := range s.Links() {
		switch {
		case e.IsGap():
			p.Links = append(p.Links, PagerLink{Label: "…", Gap: true})
		case e.IsCurrent():
			p.Links = append(p.Links, PagerLink{Label: strconv.Itoa(e.Page.Number()), Current: true})
		default:
			p.Links = append(p.Links, PagerLink{
				Label: strconv.Itoa(e.Page.Number()),
				URL:   PageURL(basePath, e.Page.Offset),
			})
		}
	}
	return p
}

// ParseID reads a positive integer chi URL parameter.
func ParseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
