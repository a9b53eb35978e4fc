// Package cache provides caching for the layout pipeline.
//
// The [Cache] interface abstracts the storage backend; [FileCache]
// serves CLI usage, [RedisCache] multi-instance server deployments, and
// [NullCache] disables caching. The [Keyer] interface produces content-
// addressed keys for the three cached artifact classes: chart snapshots,
// computed layouts, and rendered artifacts. Key components are hashed
// with SHA-256, so identical inputs always map to identical keys.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for pipeline results.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts carries the layout inputs that affect cache identity.
// Collapsed must be sorted by the caller for stable keys.
type LayoutKeyOpts struct {
	AspectRatio float64  `json:"aspect_ratio"`
	Collapsed   []string `json:"collapsed,omitempty"`
	CardWidth   float64  `json:"card_width"`
	CardHeight  float64  `json:"card_height"`
	GapX        float64  `json:"gap_x"`
	GapY        float64  `json:"gap_y"`
	GapGrid     float64  `json:"gap_grid"`
	Channel     float64  `json:"channel"`
}

// ArtifactKeyOpts carries the render inputs that affect cache identity.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Style      string `json:"style"`
	View       string `json:"view"`
	Connectors bool   `json:"connectors"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ChartKey generates a key for a chart snapshot by content hash.
	ChartKey(chartHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ChartKey generates a key for a chart snapshot.
func (k *DefaultKeyer) ChartKey(chartHash string) string {
	return hashKey("chart", chartHash)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
