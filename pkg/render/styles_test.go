package render

import "testing"

func TestStyleByName(t *testing.T) {
	if s, ok := StyleByName(StyleNameSimple); !ok {
		t.Error("simple should resolve")
	} else if _, isSimple := s.(Simple); !isSimple {
		t.Error("simple should resolve to Simple")
	}

	if s, ok := StyleByName(StyleNameMono); !ok {
		t.Error("mono should resolve")
	} else if _, isMono := s.(Mono); !isMono {
		t.Error("mono should resolve to Mono")
	}

	// Empty name falls back to the default style.
	if _, ok := StyleByName(""); !ok {
		t.Error("empty name should resolve to the default")
	}

	if _, ok := StyleByName("neon"); ok {
		t.Error("unknown names should not resolve")
	}
}

func TestSimpleFill(t *testing.T) {
	s := Simple{}

	// Same department always gets the same color.
	if s.Fill("Engineering") != s.Fill("Engineering") {
		t.Error("Fill should be deterministic per department")
	}

	// Colors come from the palette.
	got := s.Fill("Engineering")
	found := false
	for _, c := range simplePalette {
		if c == got {
			found = true
		}
	}
	if !found {
		t.Errorf("Fill returned a color outside the palette: %s", got)
	}

	// Missing department gets the neutral fill.
	if s.Fill("") != "#f1f3f4" {
		t.Errorf("empty department fill = %s", s.Fill(""))
	}
}

func TestMono(t *testing.T) {
	m := Mono{}
	if m.Fill("Engineering") != "#ffffff" || m.Fill("Finance") != "#ffffff" {
		t.Error("Mono should fill every card white")
	}
	if m.Stroke() != "#000000" {
		t.Errorf("Mono stroke = %s", m.Stroke())
	}
}
