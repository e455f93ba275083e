package ml

import (
	"errors"
	"fmt"
	"math"
)

// LogisticRegression is a linear model over the raw feature vector.
type LogisticRegression struct {
	Weights   []float64
	Intercept float64
	Threshold float64
}

func (m *LogisticRegression) PredictProbability(features []float64) (float64, error) {
	if len(m.Weights) == 0 {
		return 0, errors.New("model has no weights")
	}
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.Weights), len(features))
	}
	z := m.Intercept
	for i, w := range m.Weights {
		z += w * features[i]
	}
	return sigmoid(z), nil
}

func (m *LogisticRegression) Predict(features []float64) (int, error) {
	p, err := m.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	return labelFor(p, m.Threshold), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
