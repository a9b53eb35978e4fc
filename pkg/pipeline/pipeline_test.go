package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/pondevelopment/harkje/pkg/errors"
	"github.com/pondevelopment/harkje/pkg/layout"
)

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	if opts.AspectRatio != DefaultAspectRatio {
		t.Errorf("AspectRatio = %v, want %v", opts.AspectRatio, DefaultAspectRatio)
	}
	card := layout.DefaultCard()
	if opts.CardWidth != card.Width || opts.CardHeight != card.Height {
		t.Error("card dimensions should default from the engine")
	}
	if opts.GapX != card.GapX || opts.GapY != card.GapY || opts.GapGrid != card.GapGrid || opts.Channel != card.Channel {
		t.Error("gap defaults should come from the engine")
	}
	if opts.View != ViewCards {
		t.Errorf("View = %q, want %q", opts.View, ViewCards)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{AspectRatio: 2.5}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	snapshot := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if !reflect.DeepEqual(opts, snapshot) {
		t.Error("repeated validation should not change the options")
	}
}

func TestValidateForLayoutRejectsBadRatio(t *testing.T) {
	ratios := []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, ratio := range ratios {
		opts := Options{AspectRatio: ratio}
		err := opts.ValidateForLayout()
		if err == nil {
			t.Errorf("aspect ratio %v should be rejected", ratio)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidAspectRatio) {
			t.Errorf("aspect ratio %v: error code = %q, want %q", ratio, errors.GetCode(err), errors.ErrCodeInvalidAspectRatio)
		}
	}
}

func TestValidateForLayoutRejectsBadCard(t *testing.T) {
	opts := Options{CardWidth: -10}
	err := opts.ValidateForLayout()
	if err == nil {
		t.Fatal("negative card width should be rejected")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestValidateForLayoutSortsCollapsed(t *testing.T) {
	opts := Options{Collapsed: []string{"z", "a", "m"}}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !reflect.DeepEqual(opts.Collapsed, []string{"a", "m", "z"}) {
		t.Errorf("Collapsed = %v, want sorted", opts.Collapsed)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}
	if err := ValidateFormat("gif"); err == nil {
		t.Error("ValidateFormat should reject unknown formats")
	}
	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("ValidateFormats should reject any unknown format")
	}
}

func TestValidateStyle(t *testing.T) {
	if err := ValidateStyle("simple"); err != nil {
		t.Errorf("simple should be valid: %v", err)
	}
	if err := ValidateStyle("mono"); err != nil {
		t.Errorf("mono should be valid: %v", err)
	}
	if err := ValidateStyle("neon"); err == nil {
		t.Error("unknown style should be rejected")
	}
}

func TestValidateView(t *testing.T) {
	if err := ValidateView(ViewCards); err != nil {
		t.Errorf("cards should be valid: %v", err)
	}
	if err := ValidateView(ViewDot); err != nil {
		t.Errorf("dot should be valid: %v", err)
	}
	if err := ValidateView("table"); err == nil {
		t.Error("unknown view should be rejected")
	}
}

func TestDrawConnectors(t *testing.T) {
	var opts Options
	if !opts.DrawConnectors() {
		t.Error("nil Connectors should mean true")
	}

	on := true
	opts.Connectors = &on
	if !opts.DrawConnectors() {
		t.Error("explicit true should draw connectors")
	}

	off := false
	opts.Connectors = &off
	if opts.DrawConnectors() {
		t.Error("explicit false should disable connectors")
	}
}

func TestCard(t *testing.T) {
	opts := Options{CardWidth: 100, CardHeight: 50, GapX: 10, GapY: 20, GapGrid: 5, Channel: 30}
	card := opts.Card()
	want := layout.Card{Width: 100, Height: 50, GapX: 10, GapY: 20, GapGrid: 5, Channel: 30}
	if card != want {
		t.Errorf("Card() = %+v, want %+v", card, want)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	opts := Options{
		AspectRatio: 1.6,
		Collapsed:   []string{"x"},
		CardWidth:   180,
		CardHeight:  72,
		GapX:        24,
		GapY:        48,
		GapGrid:     16,
		Channel:     36,
	}
	got := opts.LayoutKeyOpts()
	if got.AspectRatio != 1.6 || got.CardWidth != 180 || got.CardHeight != 72 {
		t.Errorf("LayoutKeyOpts = %+v", got)
	}
	if got.GapX != 24 || got.GapY != 48 || got.GapGrid != 16 || got.Channel != 36 {
		t.Errorf("gap fields should flow into key opts: %+v", got)
	}
	if !reflect.DeepEqual(got.Collapsed, []string{"x"}) {
		t.Errorf("Collapsed = %v, want [x]", got.Collapsed)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Style: "mono", View: ViewCards}
	got := opts.ArtifactKeyOpts("png")
	if got.Format != "png" || got.Style != "mono" || got.View != ViewCards {
		t.Errorf("ArtifactKeyOpts = %+v", got)
	}
	if !got.Connectors {
		t.Error("Connectors should default to true in key opts")
	}

	off := false
	opts.Connectors = &off
	if opts.ArtifactKeyOpts("png").Connectors {
		t.Error("disabled connectors should flow into key opts")
	}
}
