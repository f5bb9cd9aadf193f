package paging

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// render turns a link list into a compact form for comparison:
// "3" for a page link, "[3]" for the current page, "…" for a gap.
func render(links []PageOrGap) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		switch l.Kind {
		case PageLink:
			out = append(out, strconv.Itoa(l.Page.Offset))
		case CurrentPage:
			out = append(out, "["+strconv.Itoa(l.Page.Offset)+"]")
		case Gap:
			out = append(out, "…")
		}
	}
	return out
}

func TestNewPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		size     int
		wantPage int
	}{
		{"zero items still one page", 0, 10, 1},
		{"fewer than a page", 7, 10, 1},
		{"exact multiple", 50, 10, 5},
		{"one over", 51, 10, 6},
		{"page size one", 3, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPages(tt.total, tt.size)
			if got.PageCount != tt.wantPage {
				t.Errorf("NewPages(%d, %d).PageCount = %d, want %d", tt.total, tt.size, got.PageCount, tt.wantPage)
			}
			if got.Limit() != tt.size {
				t.Errorf("Limit() = %d, want %d", got.Limit(), tt.size)
			}
		})
	}
}

func TestNewPages_ZeroPageSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPages(10, 0) did not panic")
		}
	}()
	NewPages(10, 0)
}

func TestWithOffset(t *testing.T) {
	ps := NewPages(100, 10)

	p := ps.WithOffset(3)
	if p.Offset != 3 || p.Start != 30 || p.Limit != 10 {
		t.Errorf("WithOffset(3) = %+v, want {Offset:3 Start:30 Limit:10}", p)
	}
	if p.Number() != 4 {
		t.Errorf("Number() = %d, want 4", p.Number())
	}

	if got := ps.WithOffset(-5); got.Offset != 0 {
		t.Errorf("WithOffset(-5).Offset = %d, want 0", got.Offset)
	}
}

func TestWithOffset_ClampsPastEnd(t *testing.T) {
	for _, total := range []int{0, 7, 50, 95} {
		ps := NewPages(total, 10)
		last := ps.WithOffset(ps.PageCount - 1)
		for _, req := range []int{ps.PageCount, ps.PageCount + 1, 1000} {
			if got := ps.WithOffset(req); got != last {
				t.Errorf("total=%d: WithOffset(%d) = %+v, want %+v", total, req, got, last)
			}
		}
	}
}

func TestLinks(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		offset int
		want   []string
	}{
		{
			name:   "single page",
			total:  7,
			offset: 0,
			want:   []string{"[0]"},
		},
		{
			name:   "no gaps",
			total:  50,
			offset: 2,
			want:   []string{"0", "1", "[2]", "3", "4"},
		},
		{
			name:   "gaps both sides",
			total:  100,
			offset: 5,
			want:   []string{"0", "…", "3", "4", "[5]", "6", "7", "…", "9"},
		},
		{
			name:   "single elided page is shown, not gapped",
			total:  70,
			offset: 3,
			want:   []string{"0", "1", "2", "[3]", "4", "5", "6"},
		},
		{
			name:   "first page of many",
			total:  100,
			offset: 0,
			want:   []string{"[0]", "1", "2", "…", "9"},
		},
		{
			name:   "last page of many",
			total:  100,
			offset: 9,
			want:   []string{"0", "…", "7", "8", "[9]"},
		},
		{
			name:   "edge page adjacent to window",
			total:  40,
			offset: 0,
			want:   []string{"[0]", "1", "2", "3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.total, 10, tt.offset)
			if diff := cmp.Diff(tt.want, render(s.Links())); diff != "" {
				t.Errorf("Links() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinks_NeverExceedsBound(t *testing.T) {
	for total := 0; total <= 300; total += 7 {
		ps := NewPages(total, 10)
		for off := 0; off < ps.PageCount; off++ {
			s := State{Pages: ps, Current: ps.WithOffset(off), Window: DefaultWindow}
			links := s.Links()
			if bound := 2*DefaultWindow + 1 + 4; len(links) > bound {
				t.Fatalf("total=%d off=%d: %d links, want at most %d", total, off, len(links), bound)
			}
			current := 0
			for _, l := range links {
				if l.IsCurrent() {
					current++
				}
			}
			if current != 1 {
				t.Fatalf("total=%d off=%d: %d current entries, want 1", total, off, current)
			}
		}
	}
}

func TestShowingRange(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		offset int
		want   Range
	}{
		{"empty", 0, 0, Range{}},
		{"first page", 25, 0, Range{First: 1, Last: 10, Total: 25}},
		{"partial last page", 25, 2, Range{First: 21, Last: 25, Total: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewState(tt.total, 10, tt.offset).ShowingRange()
			if got != tt.want {
				t.Errorf("ShowingRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrevNext(t *testing.T) {
	s := NewState(30, 10, 1)
	if !s.HasPrev() || !s.HasNext() {
		t.Errorf("middle page: HasPrev=%v HasNext=%v, want both true", s.HasPrev(), s.HasNext())
	}
	if s.PrevOffset() != 0 || s.NextOffset() != 2 {
		t.Errorf("PrevOffset=%d NextOffset=%d, want 0 and 2", s.PrevOffset(), s.NextOffset())
	}

	only := NewState(3, 10, 0)
	if only.HasPrev() || only.HasNext() || only.Multiple() {
		t.Error("single page should have no prev/next and not be multiple")
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "/quotes", 0},
		{"valid", "/quotes?page=3", 3},
		{"negative", "/quotes?page=-2", 0},
		{"garbage", "/quotes?page=abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.query, nil)
			if got := ParsePage(r); got != tt.want {
				t.Errorf("ParsePage(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
