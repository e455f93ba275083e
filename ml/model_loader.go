package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Supported artifact types.
const (
	ModelLogisticRegression = "logistic_regression"
	ModelDecisionTree       = "decision_tree"
	ModelRandomForest       = "random_forest"
)

// artifact is the on-disk JSON form of an exported classifier.
type artifact struct {
	Type      string       `json:"type"`
	Version   string       `json:"version"`
	Features  []string     `json:"features"`
	Threshold *float64     `json:"threshold"`
	Weights   []float64    `json:"weights"`
	Intercept float64      `json:"intercept"`
	Nodes     []TreeNode   `json:"nodes"`
	Trees     [][]TreeNode `json:"trees"`
}

// LoadModel reads and validates the artifact at path.
func LoadModel(path string) (Classifier, ModelInfo, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, ModelInfo{}, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	model, info, err := ParseModel(payload)
	if err != nil {
		return nil, ModelInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	info.Path = path
	return model, info, nil
}

// ParseModel decodes an artifact. The artifact's feature list must match
// FeatureNames exactly; a reordered or partial schema is rejected.
func ParseModel(payload []byte) (Classifier, ModelInfo, error) {
	var a artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, ModelInfo{}, fmt.Errorf("%w: decode artifact: %v", ErrModelLoad, err)
	}
	if err := checkSchema(a.Features); err != nil {
		return nil, ModelInfo{}, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	threshold := DefaultThreshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, ModelInfo{}, fmt.Errorf("%w: threshold %v outside (0,1)", ErrModelLoad, threshold)
	}

	var model Classifier
	switch a.Type {
	case ModelLogisticRegression:
		if len(a.Weights) != FeatureCount {
			return nil, ModelInfo{}, fmt.Errorf("%w: expected %d weights, got %d", ErrModelLoad, FeatureCount, len(a.Weights))
		}
		model = &LogisticRegression{Weights: a.Weights, Intercept: a.Intercept, Threshold: threshold}
	case ModelDecisionTree:
		if err := validateTree(a.Nodes, FeatureCount); err != nil {
			return nil, ModelInfo{}, fmt.Errorf("%w: %v", ErrModelLoad, err)
		}
		model = &DecisionTree{Nodes: a.Nodes, Threshold: threshold}
	case ModelRandomForest:
		if len(a.Trees) == 0 {
			return nil, ModelInfo{}, fmt.Errorf("%w: forest has no trees", ErrModelLoad)
		}
		for i, nodes := range a.Trees {
			if err := validateTree(nodes, FeatureCount); err != nil {
				return nil, ModelInfo{}, fmt.Errorf("%w: tree %d: %v", ErrModelLoad, i, err)
			}
		}
		model = &RandomForest{Trees: a.Trees, Threshold: threshold}
	case "":
		return nil, ModelInfo{}, fmt.Errorf("%w: artifact has no type", ErrModelLoad)
	default:
		return nil, ModelInfo{}, fmt.Errorf("%w: unsupported model type %q", ErrModelLoad, a.Type)
	}

	return model, ModelInfo{
		Type:         a.Type,
		Version:      a.Version,
		Threshold:    threshold,
		FeatureNames: a.Features,
	}, nil
}

func checkSchema(features []string) error {
	expected := FeatureNames()
	if len(features) == 0 {
		return errors.New("artifact lists no features")
	}
	if len(features) != len(expected) {
		return fmt.Errorf("artifact has %d features, encoder produces %d", len(features), len(expected))
	}
	var mismatched []string
	for i, name := range expected {
		if features[i] != name {
			mismatched = append(mismatched, fmt.Sprintf("column %d is %q, want %q", i, features[i], name))
		}
	}
	if len(mismatched) > 0 {
		return errors.New("feature order mismatch: " + strings.Join(mismatched, ", "))
	}
	return nil
}
