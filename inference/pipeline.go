package inference

import (
	"encoding/json"
	"fmt"
	"os"
)

const PipelineFormat = "laptopgenius.pipeline/v1"

type pipelineSpec struct {
	Format          string        `json:"format"`
	Version         string        `json:"version"`
	TargetTransform string        `json:"target_transform"`
	Columns         []string      `json:"columns"`
	Encoder         encoderSpec   `json:"encoder"`
	Regressor       regressorSpec `json:"regressor"`
}

// Pipeline is a fitted encoder + regressor pair whose target was the
// natural log of the price. It is immutable once parsed.
type Pipeline struct {
	version   string
	columns   []string
	encoder   *OneHotEncoder
	regressor Regressor
}

func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}
	p, err := ParsePipeline(data)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", path, err)
	}
	return p, nil
}

func ParsePipeline(data []byte) (*Pipeline, error) {
	var spec pipelineSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}

	if spec.Format != PipelineFormat {
		return nil, fmt.Errorf("unsupported pipeline format %q", spec.Format)
	}
	if spec.TargetTransform != "log" {
		return nil, fmt.Errorf("unsupported target transform %q", spec.TargetTransform)
	}
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("pipeline declares no input columns")
	}

	enc, err := newOneHotEncoder(spec.Encoder, spec.Columns)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	reg, err := buildRegressor(spec.Regressor, enc.Width())
	if err != nil {
		return nil, fmt.Errorf("regressor: %w", err)
	}

	return &Pipeline{
		version:   spec.Version,
		columns:   append([]string(nil), spec.Columns...),
		encoder:   enc,
		regressor: reg,
	}, nil
}

func (p *Pipeline) Version() string { return p.version }

// Columns returns the fitted input schema in order.
func (p *Pipeline) Columns() []string {
	return append([]string(nil), p.columns...)
}

// PredictLogPrice runs one row through the encoder and regressor. The row
// must carry exactly the fitted columns in fitted order.
func (p *Pipeline) PredictLogPrice(row Row) (float64, error) {
	if len(row) != len(p.columns) {
		return 0, fmt.Errorf("%w: got %d columns, want %d", ErrSchemaMismatch, len(row), len(p.columns))
	}
	for i, c := range row {
		if c.Name != p.columns[i] {
			return 0, fmt.Errorf("%w: column %d is %q, want %q", ErrSchemaMismatch, i, c.Name, p.columns[i])
		}
	}

	x, err := p.encoder.Transform(row)
	if err != nil {
		return 0, err
	}
	return p.regressor.Predict(x), nil
}
