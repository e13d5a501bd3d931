// Package inference evaluates trained price pipelines exported from the
// offline training stack and reads the reference table the pipeline was
// fit on.
package inference

import "errors"

var (
	ErrSchemaMismatch  = errors.New("feature row does not match fitted schema")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownColumn   = errors.New("unknown column")
)

// Cell is one named value of a feature row. Categorical cells carry Text,
// numeric cells carry Value.
type Cell struct {
	Name        string
	Text        string
	Value       float64
	Categorical bool
}

func Categorical(name, value string) Cell {
	return Cell{Name: name, Text: value, Categorical: true}
}

func Numeric(name string, value float64) Cell {
	return Cell{Name: name, Value: value}
}

// Row is a single-row feature table in column order.
type Row []Cell

func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}
