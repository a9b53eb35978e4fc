package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg,png,pdf"); !reflect.DeepEqual(got, []string{"svg", "png", "pdf"}) {
		t.Errorf("parseFormats = %v", got)
	}
}

func TestParseCollapsed(t *testing.T) {
	if got := parseCollapsed(""); got != nil {
		t.Errorf("parseCollapsed(\"\") = %v, want nil", got)
	}
	if got := parseCollapsed("a, b ,,c"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("parseCollapsed = %v, want trimmed non-empty ids", got)
	}
}

func TestMergeCollapsed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "org.view.json")
	if err := writeViewState(path, viewState{Collapsed: []string{"b", "c"}}); err != nil {
		t.Fatalf("write view state: %v", err)
	}

	got, err := mergeCollapsed("a,b", path)
	if err != nil {
		t.Fatalf("mergeCollapsed error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("mergeCollapsed = %v, want deduped union", got)
	}

	// No view file: flag ids only.
	got, err = mergeCollapsed("x,y", "")
	if err != nil {
		t.Fatalf("mergeCollapsed error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("mergeCollapsed = %v", got)
	}

	// Missing view file is an error.
	if _, err := mergeCollapsed("", filepath.Join(t.TempDir(), "ghost.json")); err == nil {
		t.Error("missing view file should error")
	}
}

func TestViewStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "org.view.json")
	vs := viewState{Collapsed: []string{"cto", "cfo"}}

	if err := writeViewState(path, vs); err != nil {
		t.Fatalf("writeViewState error: %v", err)
	}
	got, err := readViewState(path)
	if err != nil {
		t.Fatalf("readViewState error: %v", err)
	}
	if !reflect.DeepEqual(got, vs.Collapsed) {
		t.Errorf("readViewState = %v, want %v", got, vs.Collapsed)
	}

	data, _ := os.ReadFile(path)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Error("view file should end with a newline")
	}
}

func TestBasePath(t *testing.T) {
	cases := []struct {
		output, input, want string
	}{
		{"", "org.json", "org"},
		{"", "charts/org.json", "charts/org"},
		{"diagram.svg", "org.json", "diagram"},
		{"diagram.png", "org.json", "diagram"},
		{"diagram", "org.json", "diagram"},
		{"report.v2", "org.json", "report.v2"},
	}
	for _, tc := range cases {
		if got := basePath(tc.output, tc.input); got != tc.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tc.output, tc.input, got, tc.want)
		}
	}
}
