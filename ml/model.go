package ml

// Classifier is a loaded binary churn model.
type Classifier interface {
	// Predict returns the class label, 0 (stays) or 1 (churns).
	Predict(features []float64) (int, error)
	// PredictProbability returns the probability of class 1.
	PredictProbability(features []float64) (float64, error)
}

// ModelInfo describes a loaded artifact.
type ModelInfo struct {
	Type         string   `json:"type"`
	Version      string   `json:"version,omitempty"`
	Path         string   `json:"path,omitempty"`
	Threshold    float64  `json:"threshold"`
	FeatureNames []string `json:"features"`
}

// PredictionResult is the output of one inference call.
type PredictionResult struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

// DefaultThreshold separates the two classes when the artifact sets none.
// Probabilities equal to the threshold resolve to class 0.
const DefaultThreshold = 0.5

func labelFor(probability, threshold float64) int {
	if probability > threshold {
		return 1
	}
	return 0
}
