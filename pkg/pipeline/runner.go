package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pondevelopment/harkje/pkg/cache"
	"github.com/pondevelopment/harkje/pkg/chart"
	"github.com/pondevelopment/harkje/pkg/errors"
	"github.com/pondevelopment/harkje/pkg/layout"
	"github.com/pondevelopment/harkje/pkg/observability"
	"github.com/pondevelopment/harkje/pkg/render"
)

// Runner executes the layout pipeline with caching.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching, a
// nil keyer selects the default key generator, and a nil logger falls
// back to the package default.
func NewRunner(c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, keyer: k, logger: logger}
}

// Stats contains timing and size information for a pipeline run.
type Stats struct {
	NodeCount  int           `json:"node_count"`
	IngestTime time.Duration `json:"ingest_time"`
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit  bool            `json:"layout_hit"`
	RenderHits map[string]bool `json:"render_hits,omitempty"`
}

// Result contains the output of a complete pipeline run.
type Result struct {
	Chart     chart.Chart       `json:"chart"`
	Layout    chart.Layout      `json:"layout"`
	Artifacts map[string][]byte `json:"-"`
	Stats     Stats             `json:"stats"`
	Cache     CacheInfo         `json:"cache"`
}

// Execute runs the complete pipeline: ingest, layout, render.
func (r *Runner) Execute(ctx context.Context, ch chart.Chart, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.New(errors.ErrCodeInvalidInput, "%s", err)
		}
		return nil, err
	}

	result := &Result{
		Chart:     ch,
		Artifacts: make(map[string][]byte),
		Cache:     CacheInfo{RenderHits: make(map[string]bool)},
	}

	// Ingest: validate the snapshot and count nodes.
	observability.Pipeline().OnIngestStart(ctx, "chart")
	start := time.Now()
	tree, err := ch.Tree()
	result.Stats.IngestTime = time.Since(start)
	if err == nil {
		result.Stats.NodeCount = tree.Count()
	}
	observability.Pipeline().OnIngestComplete(ctx, "chart", result.Stats.NodeCount, result.Stats.IngestTime, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "invalid hierarchy")
	}
	opts.Logger.Info("ingested chart", "nodes", result.Stats.NodeCount, "duration", result.Stats.IngestTime)

	// Layout.
	observability.Pipeline().OnLayoutStart(ctx, result.Stats.NodeCount)
	start = time.Now()
	l, hit, err := r.Layout(ctx, ch, &opts)
	result.Stats.LayoutTime = time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, result.Stats.NodeCount, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Cache.LayoutHit = hit
	opts.Logger.Info("computed layout",
		"cards", len(l.Cards),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Render.
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start = time.Now()
	for _, format := range opts.Formats {
		data, hit, err := r.Render(ctx, ch, l, format, &opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
		result.Artifacts[format] = data
		result.Cache.RenderHits[format] = hit
	}
	result.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)
	opts.Logger.Info("rendered artifacts", "formats", opts.Formats, "duration", result.Stats.RenderTime)

	return result, nil
}

// Layout computes the card layout for a chart, consulting the cache
// first. The second return reports whether the result was cached.
func (r *Runner) Layout(ctx context.Context, ch chart.Chart, opts *Options) (chart.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Layout{}, false, err
	}

	raw, err := chart.MarshalChart(ch)
	if err != nil {
		return chart.Layout{}, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to encode chart")
	}
	key := r.keyer.LayoutKey(cache.Hash(raw), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			l, err := chart.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return l, true, nil
			}
			// Corrupt entry, recompute below.
			r.logger.Warn("discarding corrupt cached layout", "key", key, "error", err)
		} else if err != nil {
			r.logger.Warn("layout cache read failed", "key", key, "error", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	tree, err := ch.Tree()
	if err != nil {
		return chart.Layout{}, false, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "invalid hierarchy")
	}

	card := opts.Card()
	engine := layout.New(opts.AspectRatio,
		layout.WithCard(card),
		layout.WithCollapsed(opts.Collapsed...))
	res := engine.Build(tree, 0, 0)
	l := chart.Export(tree, res, card, opts.AspectRatio, opts.Collapsed)

	if data, err := chart.MarshalLayout(l); err == nil {
		if err := r.cache.Set(ctx, key, data, 0); err != nil {
			r.logger.Warn("layout cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// Render produces one output format for a laid-out chart, consulting
// the artifact cache first. The second return reports a cache hit.
func (r *Runner) Render(ctx context.Context, ch chart.Chart, l chart.Layout, format string, opts *Options) ([]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "%s", err)
	}
	if err := ValidateFormat(format); err != nil {
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "%s", err)
	}

	encoded, err := chart.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode layout")
	}

	// The JSON artifact is the layout itself; no cache round-trip needed.
	if format == FormatJSON {
		return encoded, false, nil
	}

	key := r.keyer.ArtifactKey(cache.Hash(encoded), opts.ArtifactKeyOpts(format))
	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		} else if err != nil {
			r.logger.Warn("artifact cache read failed", "key", key, "error", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := r.render(ctx, ch, l, format, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, data, 0); err != nil {
		r.logger.Warn("artifact cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func (r *Runner) render(ctx context.Context, ch chart.Chart, l chart.Layout, format string, opts *Options) ([]byte, error) {
	if opts.View == ViewDot {
		return r.renderDot(ctx, ch, format, opts)
	}

	style, _ := render.StyleByName(opts.Style)
	svgOpts := []render.SVGOption{render.WithStyle(style)}
	if !opts.DrawConnectors() {
		svgOpts = append(svgOpts, render.WithoutConnectors())
	}
	svg := render.RenderSVG(l, svgOpts...)

	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		data, err := render.ToPNG(svg, opts.Scale)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "png conversion failed")
		}
		return data, nil
	case FormatPDF:
		data, err := render.ToPDF(svg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "pdf conversion failed")
		}
		return data, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

func (r *Runner) renderDot(_ context.Context, ch chart.Chart, format string, opts *Options) ([]byte, error) {
	dot := render.ToDOT(ch)
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = render.RenderDOTSVG(dot)
	case FormatPNG:
		data, err = render.RenderDOTPNG(dot, opts.Scale)
	case FormatPDF:
		data, err = render.RenderDOTPDF(dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format for dot view: %s", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz rendering failed")
	}
	return data, nil
}
