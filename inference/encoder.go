package inference

import (
	"fmt"
)

type encoderSpec struct {
	Type          string              `json:"type"`
	Drop          string              `json:"drop"`
	HandleUnknown string              `json:"handle_unknown"`
	Columns       []encodedColumnSpec `json:"columns"`
	Remainder     string              `json:"remainder"`
}

type encodedColumnSpec struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

type encodedColumn struct {
	name       string
	position   int
	categories []string
	lookup     map[string]int
	dropFirst  bool
}

func (c encodedColumn) width() int {
	if c.dropFirst {
		return len(c.categories) - 1
	}
	return len(c.categories)
}

// OneHotEncoder lays out its output like a column transformer with a single
// one-hot step: encoded blocks in encoder order, then remainder columns in
// input order.
type OneHotEncoder struct {
	columns       []encodedColumn
	remainder     []int
	ignoreUnknown bool
	width         int
}

func newOneHotEncoder(spec encoderSpec, inputs []string) (*OneHotEncoder, error) {
	if spec.Type != "" && spec.Type != "one_hot" {
		return nil, fmt.Errorf("unsupported encoder type %q", spec.Type)
	}

	var dropFirst bool
	switch spec.Drop {
	case "", "none":
	case "first":
		dropFirst = true
	default:
		return nil, fmt.Errorf("unsupported encoder drop %q", spec.Drop)
	}

	var ignoreUnknown bool
	switch spec.HandleUnknown {
	case "", "error":
	case "ignore":
		ignoreUnknown = true
	default:
		return nil, fmt.Errorf("unsupported handle_unknown %q", spec.HandleUnknown)
	}

	position := make(map[string]int, len(inputs))
	for i, name := range inputs {
		if _, dup := position[name]; dup {
			return nil, fmt.Errorf("duplicate input column %q", name)
		}
		position[name] = i
	}

	enc := &OneHotEncoder{ignoreUnknown: ignoreUnknown}
	encoded := make(map[int]bool, len(spec.Columns))
	for _, cs := range spec.Columns {
		pos, ok := position[cs.Name]
		if !ok {
			return nil, fmt.Errorf("encoder column %q is not an input column", cs.Name)
		}
		if encoded[pos] {
			return nil, fmt.Errorf("encoder column %q listed twice", cs.Name)
		}
		if len(cs.Categories) == 0 {
			return nil, fmt.Errorf("encoder column %q has no categories", cs.Name)
		}
		col := encodedColumn{
			name:       cs.Name,
			position:   pos,
			categories: append([]string(nil), cs.Categories...),
			lookup:     make(map[string]int, len(cs.Categories)),
			dropFirst:  dropFirst,
		}
		for i, cat := range cs.Categories {
			if _, dup := col.lookup[cat]; dup {
				return nil, fmt.Errorf("encoder column %q repeats category %q", cs.Name, cat)
			}
			col.lookup[cat] = i
		}
		encoded[pos] = true
		enc.columns = append(enc.columns, col)
		enc.width += col.width()
	}

	switch spec.Remainder {
	case "", "passthrough":
		for i := range inputs {
			if !encoded[i] {
				enc.remainder = append(enc.remainder, i)
			}
		}
		enc.width += len(enc.remainder)
	case "drop":
	default:
		return nil, fmt.Errorf("unsupported remainder %q", spec.Remainder)
	}

	return enc, nil
}

// Width is the length of the vectors Transform produces.
func (e *OneHotEncoder) Width() int { return e.width }

// Transform encodes a row already checked against the input schema.
func (e *OneHotEncoder) Transform(row Row) ([]float64, error) {
	out := make([]float64, 0, e.width)

	for _, col := range e.columns {
		cell := row[col.position]
		if !cell.Categorical {
			return nil, fmt.Errorf("column %q expects a categorical value", col.name)
		}
		block := make([]float64, col.width())
		idx, ok := col.lookup[cell.Text]
		switch {
		case !ok && e.ignoreUnknown:
		case !ok:
			return nil, fmt.Errorf("%w %q in column %q", ErrUnknownCategory, cell.Text, col.name)
		case col.dropFirst && idx == 0:
		case col.dropFirst:
			block[idx-1] = 1
		default:
			block[idx] = 1
		}
		out = append(out, block...)
	}

	for _, pos := range e.remainder {
		cell := row[pos]
		if cell.Categorical {
			return nil, fmt.Errorf("column %q passes through but holds a categorical value", cell.Name)
		}
		out = append(out, cell.Value)
	}

	return out, nil
}
