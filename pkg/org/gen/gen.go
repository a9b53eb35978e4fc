// Package gen provides a deterministic procedural org generator.
//
// The generator is seeded: the same [Options] always produce a
// bit-identical hierarchy, including node ids, which are derived from
// the node's position path with uuid.NewSHA1. This makes generated orgs
// usable as fixtures for layout tests and reproducible demos.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pondevelopment/harkje/pkg/org"
)

// idNamespace is the fixed UUID namespace for generated node ids.
var idNamespace = uuid.MustParse("8f6d1a8e-2f6b-4a39-9c70-6a1d3f5b9b42")

var departments = []string{
	"Engineering", "Product", "Design", "Marketing", "Sales",
	"Finance", "People", "Operations", "Legal", "Support",
}

// titles per level, root first. Deeper levels reuse the last entry.
var titles = [][]string{
	{"Chief Executive Officer"},
	{"VP Engineering", "VP Product", "VP Sales", "VP Marketing", "CFO", "COO"},
	{"Director", "Senior Manager", "Head of Department"},
	{"Manager", "Team Lead", "Principal"},
	{"Senior Specialist", "Specialist", "Associate"},
}

var firstNames = []string{
	"Anna", "Bram", "Carmen", "Daan", "Emma", "Finn", "Greta", "Hugo",
	"Iris", "Jesse", "Kim", "Lars", "Mila", "Noah", "Olivia", "Pieter",
	"Quinn", "Rosa", "Sven", "Tess", "Umar", "Vera", "Willem", "Yara", "Zoe",
}

var lastNames = []string{
	"Bakker", "de Vries", "Jansen", "Klein", "Meijer", "Mulder",
	"Peters", "Smit", "van Dijk", "van den Berg", "Visser", "Vos",
	"de Boer", "Hendriks", "Dekker", "Brouwer", "de Groot", "Bos",
}

// Options configures the generator. The zero value is not usable; use
// [DefaultOptions] as a starting point.
type Options struct {
	Seed       uint64 // random seed; same seed, same org
	Depth      int    // number of levels including the root
	MinReports int    // minimum direct reports per non-leaf node
	MaxReports int    // maximum direct reports per non-leaf node
}

// DefaultOptions returns a mid-sized four-level org.
func DefaultOptions() Options {
	return Options{Seed: 42, Depth: 4, MinReports: 2, MaxReports: 6}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if o.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", o.Depth)
	}
	if o.MinReports < 1 {
		return fmt.Errorf("min reports must be at least 1, got %d", o.MinReports)
	}
	if o.MaxReports < o.MinReports {
		return fmt.Errorf("max reports (%d) must be >= min reports (%d)", o.MaxReports, o.MinReports)
	}
	return nil
}

// Generate produces a deterministic hierarchy from the options.
func Generate(opts Options) (*org.Node, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(int64(opts.Seed)))
	root := build(rng, opts, "0", 0, "")
	return root, nil
}

// build creates the node at the given position path and recurses into
// its reports. path encodes the node's position in the tree ("0", then
// "0.1", "0.1.3", ...), which keeps ids stable per (seed, position).
func build(rng *rand.Rand, opts Options, path string, level int, dept string) *org.Node {
	if dept == "" && level > 0 {
		dept = departments[rng.Intn(len(departments))]
	}
	n := &org.Node{
		ID:         uuid.NewSHA1(idNamespace, []byte(path)).String(),
		Name:       pick(rng, firstNames) + " " + pick(rng, lastNames),
		Title:      titleFor(rng, level),
		Department: deptFor(level, dept),
		Details:    fmt.Sprintf("employee %s", path),
	}

	if level+1 >= opts.Depth {
		return n
	}

	reports := opts.MinReports
	if spread := opts.MaxReports - opts.MinReports; spread > 0 {
		reports += rng.Intn(spread + 1)
	}
	for i := 0; i < reports; i++ {
		childDept := n.Department
		if level == 0 {
			// Top-level reports head their own departments.
			childDept = departments[i%len(departments)]
		}
		child := build(rng, opts, fmt.Sprintf("%s.%d", path, i), level+1, childDept)
		n.Children = append(n.Children, child)
	}
	return n
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func titleFor(rng *rand.Rand, level int) string {
	if level >= len(titles) {
		level = len(titles) - 1
	}
	return pick(rng, titles[level])
}

func deptFor(level int, dept string) string {
	if level == 0 {
		return "Executive"
	}
	return dept
}
