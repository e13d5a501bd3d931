package inference

import "fmt"

const leaf = -1

type treeSpec struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

// tree is a fitted regression tree in flat array layout. Node 0 is the root
// and every child index is greater than its parent's.
type tree struct {
	left, right, feature []int
	threshold, value     []float64
}

func newTree(s treeSpec, width int) (*tree, error) {
	n := len(s.Value)
	if n == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}
	if len(s.ChildrenLeft) != n || len(s.ChildrenRight) != n || len(s.Feature) != n || len(s.Threshold) != n {
		return nil, fmt.Errorf("tree arrays differ in length")
	}
	for i := 0; i < n; i++ {
		l, r := s.ChildrenLeft[i], s.ChildrenRight[i]
		if l == leaf || r == leaf {
			if l != r {
				return nil, fmt.Errorf("node %d has a single child", i)
			}
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return nil, fmt.Errorf("node %d has out-of-range children (%d, %d)", i, l, r)
		}
		if f := s.Feature[i]; f < 0 || f >= width {
			return nil, fmt.Errorf("node %d splits on feature %d, input width is %d", i, f, width)
		}
	}
	return &tree{
		left:      s.ChildrenLeft,
		right:     s.ChildrenRight,
		feature:   s.Feature,
		threshold: s.Threshold,
		value:     s.Value,
	}, nil
}

func (t *tree) Predict(x []float64) float64 {
	node := 0
	for t.left[node] != leaf {
		// split thresholds were fit on float32 features
		v := float64(float32(x[t.feature[node]]))
		if v <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return t.value[node]
}
