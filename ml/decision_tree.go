package ml

import (
	"errors"
	"fmt"
)

// DecisionTree is a binary tree stored as a flat node slice; node 0 is the root.
type DecisionTree struct {
	Nodes     []TreeNode
	Threshold float64
}

type TreeNode struct {
	FeatureIdx  int     `json:"feature_idx"`
	Threshold   float64 `json:"threshold"`
	LeftChild   int     `json:"left_child"`
	RightChild  int     `json:"right_child"`
	IsLeaf      bool    `json:"is_leaf"`
	Probability float64 `json:"probability"`
}

func (dt *DecisionTree) PredictProbability(features []float64) (float64, error) {
	return walkTree(dt.Nodes, features)
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	p, err := dt.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	return labelFor(p, dt.Threshold), nil
}

// RandomForest averages the leaf probabilities of its trees.
type RandomForest struct {
	Trees     [][]TreeNode
	Threshold float64
}

func (rf *RandomForest) PredictProbability(features []float64) (float64, error) {
	if len(rf.Trees) == 0 {
		return 0, errors.New("forest has no trees")
	}
	sum := 0.0
	for i, nodes := range rf.Trees {
		p, err := walkTree(nodes, features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += p
	}
	return sum / float64(len(rf.Trees)), nil
}

func (rf *RandomForest) Predict(features []float64) (int, error) {
	p, err := rf.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	return labelFor(p, rf.Threshold), nil
}

func walkTree(nodes []TreeNode, features []float64) (float64, error) {
	if len(nodes) == 0 {
		return 0, errors.New("tree has no nodes")
	}
	idx := 0
	// A valid tree reaches a leaf in at most len(nodes) steps.
	for steps := 0; steps <= len(nodes); steps++ {
		node := nodes[idx]
		if node.IsLeaf {
			return node.Probability, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
	return 0, errors.New("tree contains a cycle")
}

// validateTree checks node references against the feature count.
func validateTree(nodes []TreeNode, featureCount int) error {
	if len(nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if node.Probability < 0 || node.Probability > 1 {
				return fmt.Errorf("node %d: leaf probability %v outside [0,1]", i, node.Probability)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, node.RightChild)
		}
	}
	return nil
}
