package render

import "hash/fnv"

// Style controls the visual appearance of rendered cards. Styling is a
// renderer concern only; it never feeds back into layout decisions.
type Style interface {
	// Fill returns the card fill color for a department.
	Fill(department string) string
	// Stroke returns the card border color.
	Stroke() string
	// Text returns the primary text color.
	Text() string
	// SubText returns the secondary text color.
	SubText() string
	// Connector returns the connector line color.
	Connector() string
}

// Style names accepted by [StyleByName].
const (
	StyleNameSimple = "simple"
	StyleNameMono   = "mono"
)

// StyleByName resolves a style name. Unknown names return false.
func StyleByName(name string) (Style, bool) {
	switch name {
	case StyleNameSimple, "":
		return Simple{}, true
	case StyleNameMono:
		return Mono{}, true
	default:
		return nil, false
	}
}

// Simple renders cards with a soft per-department palette.
type Simple struct{}

// palette of card fills; a department hashes to a stable entry.
var simplePalette = []string{
	"#e8f0fe", "#e6f4ea", "#fef7e0", "#fce8e6", "#f3e8fd",
	"#e4f7fb", "#fde7f3", "#eef3ed", "#fff0e1", "#e9eef6",
}

// Fill returns a stable palette color for the department.
func (Simple) Fill(department string) string {
	if department == "" {
		return "#f1f3f4"
	}
	h := fnv.New32a()
	h.Write([]byte(department))
	return simplePalette[h.Sum32()%uint32(len(simplePalette))]
}

func (Simple) Stroke() string    { return "#5f6368" }
func (Simple) Text() string      { return "#202124" }
func (Simple) SubText() string   { return "#5f6368" }
func (Simple) Connector() string { return "#9aa0a6" }

// Mono renders plain white cards with black strokes, suited to print.
type Mono struct{}

func (Mono) Fill(string) string { return "#ffffff" }
func (Mono) Stroke() string     { return "#000000" }
func (Mono) Text() string       { return "#000000" }
func (Mono) SubText() string    { return "#444444" }
func (Mono) Connector() string  { return "#000000" }
