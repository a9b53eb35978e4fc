// Package chart defines the canonical serialization formats for
// hierarchies and computed layouts.
//
// Chart is the interchange format for hierarchy snapshots (flat records)
// and Layout the interchange format for positioned card diagrams. Both
// are designed for round-trip fidelity: import → layout → export →
// re-import produces identical results. The bson tags support the mongo
// snapshot store alongside JSON for files and the HTTP API.
package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pondevelopment/harkje/pkg/org"
)

// Chart is the serialization format for a hierarchy snapshot.
type Chart struct {
	Records []org.Record `json:"records" bson:"records"`
}

// FromTree flattens a hierarchy into its serialization format.
func FromTree(root *org.Node) Chart {
	return Chart{Records: org.Flatten(root)}
}

// Tree rebuilds the hierarchy, enforcing the structural invariants.
func (c Chart) Tree() (*org.Node, error) {
	return org.Build(c.Records)
}

// MarshalChart serializes a Chart to pretty-printed JSON bytes.
func MarshalChart(c Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// UnmarshalChart deserializes JSON bytes into a Chart and checks that
// the records form a valid hierarchy.
func UnmarshalChart(data []byte) (Chart, error) {
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return Chart{}, fmt.Errorf("unmarshal chart: %w", err)
	}
	if _, err := c.Tree(); err != nil {
		return Chart{}, err
	}
	return c, nil
}

// WriteChartFile writes a Chart to a JSON file.
func WriteChartFile(c Chart, path string) error {
	data, err := MarshalChart(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadChartFile reads a Chart from a JSON file.
func ReadChartFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalChart(data)
}
