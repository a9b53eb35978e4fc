package org

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// csvHeader is the fixed column order for CSV interchange.
var csvHeader = []string{"id", "parent_id", "name", "title", "department", "details"}

// WriteJSON encodes the hierarchy as nested JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(root *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode hierarchy: %w", err)
	}
	return nil
}

// ReadJSON decodes a nested JSON hierarchy from r and validates it.
func ReadJSON(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode hierarchy: %w", err)
	}
	if err := Validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// WriteCSV encodes the hierarchy as flat CSV records and writes it to w.
// The first row is the header: id, parent_id, name, title, department, details.
func WriteCSV(root *Node, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range Flatten(root) {
		row := []string{r.ID, r.ParentID, r.Name, r.Title, r.Department, r.Details}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV decodes flat CSV records from r and builds the hierarchy tree.
// The header row is required and column order must match [WriteCSV].
func ReadCSV(r io.Reader) (*Node, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("unexpected CSV column %d: got %q, want %q", i, header[i], col)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		records = append(records, Record{
			ID:         strings.TrimSpace(row[0]),
			ParentID:   strings.TrimSpace(row[1]),
			Name:       row[2],
			Title:      row[3],
			Department: row[4],
			Details:    row[5],
		})
	}
	return Build(records)
}

// ReadFile loads a hierarchy from a file, choosing the codec by
// extension: .csv for flat records, anything else is treated as nested JSON.
func ReadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadJSON(f)
}

// WriteFile writes a hierarchy to a file, choosing the codec by
// extension like [ReadFile].
func WriteFile(root *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return WriteCSV(root, f)
	}
	return WriteJSON(root, f)
}
