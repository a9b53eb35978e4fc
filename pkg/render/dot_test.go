package render

import (
	"strings"
	"testing"

	"github.com/pondevelopment/harkje/pkg/chart"
	"github.com/pondevelopment/harkje/pkg/org"
)

func TestToDOT(t *testing.T) {
	c := chart.Chart{Records: []org.Record{
		{ID: "ceo", Name: "Eva", Title: "CEO"},
		{ID: "cto", ParentID: "ceo", Name: "Tom"},
		{ID: "ops", ParentID: "ceo"},
	}}

	dot := ToDOT(c)

	if !strings.HasPrefix(dot, "digraph org {") {
		t.Error("DOT should open a digraph")
	}
	if !strings.Contains(dot, `"ceo" [label="Eva\nCEO"];`) {
		t.Errorf("node with name and title should get a two-line label:\n%s", dot)
	}
	if !strings.Contains(dot, `"cto" [label="Tom"];`) {
		t.Error("node without title should use the name")
	}
	if !strings.Contains(dot, `"ops" [label="ops"];`) {
		t.Error("node without name or title should fall back to the id")
	}
	if !strings.Contains(dot, `"ceo" -> "cto";`) || !strings.Contains(dot, `"ceo" -> "ops";`) {
		t.Error("each parent link should become an edge")
	}
	if strings.Contains(dot, `-> "ceo"`) {
		t.Error("the root should have no incoming edge")
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should close the digraph")
	}
}

func TestRecordLabel(t *testing.T) {
	cases := []struct {
		name, title, want string
	}{
		{"Eva", "CEO", "Eva\nCEO"},
		{"Eva", "", "Eva"},
		{"", "CEO", "CEO"},
		{"", "", ""},
		{"  Eva  ", " CEO ", "Eva\nCEO"},
	}
	for _, tc := range cases {
		if got := recordLabel(tc.name, tc.title); got != tc.want {
			t.Errorf("recordLabel(%q, %q) = %q, want %q", tc.name, tc.title, got, tc.want)
		}
	}
}
