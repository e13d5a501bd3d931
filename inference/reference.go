package inference

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReferenceTable holds the distinct values of every column of the
// historical dataset, each in first-appearance order.
type ReferenceTable struct {
	columns  []string
	distinct map[string][]string
	rows     int
}

// LoadReferenceTable reads a .csv export (header row first) or a .json
// array of records.
func LoadReferenceTable(path string) (*ReferenceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()

	var t *ReferenceTable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err = ReadReferenceCSV(f)
	case ".json":
		t, err = ReadReferenceJSON(f)
	default:
		return nil, fmt.Errorf("reference table %s: unsupported extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reference table %s: %w", path, err)
	}
	return t, nil
}

func newReferenceTable() *ReferenceTable {
	return &ReferenceTable{distinct: make(map[string][]string)}
}

func (t *ReferenceTable) addColumn(name string) {
	if _, ok := t.distinct[name]; ok {
		return
	}
	t.columns = append(t.columns, name)
	t.distinct[name] = []string{}
}

func ReadReferenceCSV(r io.Reader) (*ReferenceTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty csv")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := newReferenceTable()
	seen := make([]map[string]bool, len(header))
	for i, name := range header {
		if _, dup := t.distinct[name]; dup {
			return nil, fmt.Errorf("duplicate csv column %q", name)
		}
		t.addColumn(name)
		seen[i] = make(map[string]bool)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", t.rows+1, err)
		}
		for i, v := range rec {
			if v == "" || seen[i][v] {
				continue
			}
			seen[i][v] = true
			t.distinct[header[i]] = append(t.distinct[header[i]], v)
		}
		t.rows++
	}
	return t, nil
}

func ReadReferenceJSON(r io.Reader) (*ReferenceTable, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	t := newReferenceTable()
	seen := make(map[string]map[string]bool)
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("record %d: %w", t.rows, err)
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", t.rows, err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("record %d: expected key, got %v", t.rows, tok)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", t.rows, key, err)
			}

			t.addColumn(key)
			if seen[key] == nil {
				seen[key] = make(map[string]bool)
			}
			v, ok, err := scalarText(raw)
			if err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", t.rows, key, err)
			}
			if !ok || v == "" || seen[key][v] {
				continue
			}
			seen[key][v] = true
			t.distinct[key] = append(t.distinct[key], v)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("record %d: %w", t.rows, err)
		}
		t.rows++
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return t, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// scalarText renders a JSON scalar the way it was written. Nulls report
// ok=false; objects and arrays are rejected.
func scalarText(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		return "", false, nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case raw[0] == '{' || raw[0] == '[':
		return "", false, fmt.Errorf("nested values are not supported")
	default:
		return string(raw), true, nil
	}
}

func (t *ReferenceTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *ReferenceTable) Len() int { return t.rows }

// DistinctValues returns a copy of the non-empty distinct values of column.
func (t *ReferenceTable) DistinctValues(column string) ([]string, error) {
	vals, ok := t.distinct[column]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, column)
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out, nil
}
