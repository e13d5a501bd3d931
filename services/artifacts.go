package services

import (
	"fmt"
	"slices"

	"laptop-price-api/config"
	"laptop-price-api/inference"
)

// Pipeline is the trained model as the predictor sees it.
type Pipeline interface {
	Version() string
	Columns() []string
	PredictLogPrice(row inference.Row) (float64, error)
}

// ValueSource yields the distinct values of a reference table column.
type ValueSource interface {
	DistinctValues(column string) ([]string, error)
}

// ArtifactStore holds the trained pipeline and the reference table. It is
// loaded once at startup and only read afterwards.
type ArtifactStore struct {
	Pipeline  Pipeline
	Reference ValueSource
}

func LoadArtifactStore(cfg config.ArtifactsConfig) (*ArtifactStore, error) {
	pipe, err := inference.LoadPipeline(cfg.PipelinePath)
	if err != nil {
		return nil, &StartupError{Component: "trained pipeline", Err: err}
	}
	ref, err := inference.LoadReferenceTable(cfg.ReferencePath)
	if err != nil {
		return nil, &StartupError{Component: "reference table", Err: err}
	}
	return &ArtifactStore{Pipeline: pipe, Reference: ref}, nil
}

// CheckSchema reports whether the pipeline was fitted on the feature row
// this service builds. A mismatch is not fatal; every prediction will fail.
func (s *ArtifactStore) CheckSchema() error {
	got := s.Pipeline.Columns()
	if !slices.Equal(got, FeatureColumns) {
		return fmt.Errorf("pipeline columns %q differ from feature row %q", got, FeatureColumns)
	}
	return nil
}
