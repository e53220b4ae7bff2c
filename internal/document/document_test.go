package document

import "testing"

func TestNew_JoinsSegmentsWithBlankLine(t *testing.T) {
	doc := New("/in/paper.pdf", "", []string{"page one", "", "page three"})

	if doc.Name != "paper.pdf" {
		t.Errorf("expected name %q, got %q", "paper.pdf", doc.Name)
	}
	want := "page one\n\n\n\npage three"
	if doc.Text != want {
		t.Errorf("expected text %q, got %q", want, doc.Text)
	}
}

func TestNew_NoSegments(t *testing.T) {
	doc := New("empty.pdf", "", nil)
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"paper.pdf", "paper"},
		{"my.paper.v2.pdf", "my.paper.v2"},
		{"README", "README"},
	}
	for _, tc := range tests {
		doc := &Document{Name: tc.name}
		if got := doc.Stem(); got != tc.want {
			t.Errorf("Stem(%q): expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
