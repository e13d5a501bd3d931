package inference

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Regressor maps an encoded feature vector to a scalar. Input width is
// checked when the regressor is built.
type Regressor interface {
	Predict(x []float64) float64
}

type regressorSpec struct {
	Type           string          `json:"type"`
	Coef           []float64       `json:"coef,omitempty"`
	Intercept      float64         `json:"intercept,omitempty"`
	Tree           *treeSpec       `json:"tree,omitempty"`
	Trees          []treeSpec      `json:"trees,omitempty"`
	Init           float64         `json:"init,omitempty"`
	LearningRate   float64         `json:"learning_rate,omitempty"`
	Estimators     []regressorSpec `json:"estimators,omitempty"`
	Weights        []float64       `json:"weights,omitempty"`
	FinalEstimator *regressorSpec  `json:"final_estimator,omitempty"`
	Passthrough    bool            `json:"passthrough,omitempty"`
}

func buildRegressor(s regressorSpec, width int) (Regressor, error) {
	switch s.Type {
	case "linear":
		if len(s.Coef) != width {
			return nil, fmt.Errorf("linear: %d coefficients for input width %d", len(s.Coef), width)
		}
		return &linear{coef: s.Coef, intercept: s.Intercept}, nil

	case "decision_tree":
		if s.Tree == nil {
			return nil, fmt.Errorf("decision_tree: missing tree")
		}
		return newTree(*s.Tree, width)

	case "random_forest", "extra_trees":
		trees, err := buildTrees(s.Trees, width)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Type, err)
		}
		return &forest{trees: trees}, nil

	case "gradient_boosting":
		trees, err := buildTrees(s.Trees, width)
		if err != nil {
			return nil, fmt.Errorf("gradient_boosting: %w", err)
		}
		if s.LearningRate <= 0 {
			return nil, fmt.Errorf("gradient_boosting: learning_rate must be positive")
		}
		return &boosting{init: s.Init, rate: s.LearningRate, trees: trees}, nil

	case "voting":
		members, err := buildMembers(s.Estimators, width)
		if err != nil {
			return nil, fmt.Errorf("voting: %w", err)
		}
		if s.Weights != nil && len(s.Weights) != len(members) {
			return nil, fmt.Errorf("voting: %d weights for %d estimators", len(s.Weights), len(members))
		}
		if s.Weights != nil && floats.Sum(s.Weights) <= 0 {
			return nil, fmt.Errorf("voting: weights must sum to a positive value")
		}
		return &voting{members: members, weights: s.Weights}, nil

	case "stacking":
		members, err := buildMembers(s.Estimators, width)
		if err != nil {
			return nil, fmt.Errorf("stacking: %w", err)
		}
		if s.FinalEstimator == nil {
			return nil, fmt.Errorf("stacking: missing final_estimator")
		}
		finalWidth := len(members)
		if s.Passthrough {
			finalWidth += width
		}
		final, err := buildRegressor(*s.FinalEstimator, finalWidth)
		if err != nil {
			return nil, fmt.Errorf("stacking final: %w", err)
		}
		return &stacking{members: members, final: final, passthrough: s.Passthrough}, nil

	default:
		return nil, fmt.Errorf("unsupported regressor type %q", s.Type)
	}
}

func buildTrees(specs []treeSpec, width int) ([]*tree, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no trees")
	}
	trees := make([]*tree, len(specs))
	for i, ts := range specs {
		t, err := newTree(ts, width)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees[i] = t
	}
	return trees, nil
}

func buildMembers(specs []regressorSpec, width int) ([]Regressor, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no estimators")
	}
	members := make([]Regressor, len(specs))
	for i, es := range specs {
		m, err := buildRegressor(es, width)
		if err != nil {
			return nil, fmt.Errorf("estimator %d: %w", i, err)
		}
		members[i] = m
	}
	return members, nil
}

type linear struct {
	coef      []float64
	intercept float64
}

func (l *linear) Predict(x []float64) float64 {
	return floats.Dot(l.coef, x) + l.intercept
}

type forest struct {
	trees []*tree
}

func (f *forest) Predict(x []float64) float64 {
	preds := make([]float64, len(f.trees))
	for i, t := range f.trees {
		preds[i] = t.Predict(x)
	}
	return stat.Mean(preds, nil)
}

type boosting struct {
	init  float64
	rate  float64
	trees []*tree
}

func (b *boosting) Predict(x []float64) float64 {
	preds := make([]float64, len(b.trees))
	for i, t := range b.trees {
		preds[i] = t.Predict(x)
	}
	return b.init + b.rate*floats.Sum(preds)
}

type voting struct {
	members []Regressor
	weights []float64
}

func (v *voting) Predict(x []float64) float64 {
	return stat.Mean(predictAll(v.members, x), v.weights)
}

type stacking struct {
	members     []Regressor
	final       Regressor
	passthrough bool
}

func (s *stacking) Predict(x []float64) float64 {
	z := predictAll(s.members, x)
	if s.passthrough {
		z = append(z, x...)
	}
	return s.final.Predict(z)
}

func predictAll(members []Regressor, x []float64) []float64 {
	preds := make([]float64, len(members))
	for i, m := range members {
		preds[i] = m.Predict(x)
	}
	return preds
}
