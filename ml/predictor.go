package ml

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Predictor wraps a loaded classifier. It is immutable after construction and
// safe for concurrent use.
type Predictor struct {
	model Classifier
	info  ModelInfo
}

// NewPredictor wraps an already loaded classifier.
func NewPredictor(model Classifier, info ModelInfo) (*Predictor, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil classifier", ErrModelLoad)
	}
	return &Predictor{model: model, info: info}, nil
}

// LoadPredictor loads the artifact at path. Any error is fatal for startup.
func LoadPredictor(path string) (*Predictor, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: model path is empty", ErrModelLoad)
	}
	model, info, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	return NewPredictor(model, info)
}

// Info describes the loaded model.
func (p *Predictor) Info() ModelInfo {
	info := p.info
	info.FeatureNames = append([]string(nil), p.info.FeatureNames...)
	return info
}

// Predict runs one inference on vector.
func (p *Predictor) Predict(ctx context.Context, vector FeatureVector) (PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return PredictionResult{}, err
	}
	features := vector.Slice()

	label, err := p.model.Predict(features)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("%w: predict: %v", ErrInference, err)
	}
	if label != 0 && label != 1 {
		return PredictionResult{}, fmt.Errorf("%w: label %d is not binary", ErrInference, label)
	}

	probability, err := p.model.PredictProbability(features)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("%w: predict probability: %v", ErrInference, err)
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return PredictionResult{}, fmt.Errorf("%w: probability %v outside [0,1]", ErrInference, probability)
	}

	return PredictionResult{Label: label, Probability: probability}, nil
}

// IsInferenceError reports whether err came from the classifier call.
func IsInferenceError(err error) bool {
	return errors.Is(err, ErrInference)
}
