package views

import "testing"

func TestPaginatorCursorFollowsPages(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	for i := 0; i < 7; i++ {
		p.CursorDown()
	}
	if p.Cursor() != 7 {
		t.Fatalf("Cursor() = %d, want 7", p.Cursor())
	}
	if start, end := p.VisibleRange(); start != 5 || end != 10 {
		t.Errorf("VisibleRange() = %d..%d, want 5..10", start, end)
	}
	if p.CurrentPage() != 2 {
		t.Errorf("CurrentPage() = %d, want 2", p.CurrentPage())
	}
}

func TestPaginatorClampsAfterShrink(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)
	p.NextPage()
	p.NextPage()
	if p.Cursor() != 10 {
		t.Fatalf("Cursor() = %d, want 10", p.Cursor())
	}

	// A reload that drops most of the list pulls the cursor back in.
	p.SetTotal(3)
	if p.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2 after shrink", p.Cursor())
	}
	if start, end := p.VisibleRange(); start != 0 || end != 3 {
		t.Errorf("VisibleRange() = %d..%d, want 0..3", start, end)
	}
}

func TestPaginatorLegend(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		total int
		want  string
	}{
		{"single page is silent", 10, 7, ""},
		{"empty list is silent", 10, 0, ""},
		{"multi page counts posts", 5, 12, "page 1/3 (12 posts)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginator(tt.size)
			p.SetTotal(tt.total)
			if got := p.Legend("posts"); got != tt.want {
				t.Errorf("Legend() = %q, want %q", got, tt.want)
			}
		})
	}
}
