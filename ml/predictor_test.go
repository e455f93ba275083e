package ml

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	label       int
	probability float64
	err         error
	probErr     error
	calls       int
	lastInput   []float64
}

func (f *fakeClassifier) Predict(features []float64) (int, error) {
	f.calls++
	f.lastInput = features
	return f.label, f.err
}

func (f *fakeClassifier) PredictProbability(features []float64) (float64, error) {
	return f.probability, f.probErr
}

func TestPredictorPassesVectorUnchanged(t *testing.T) {
	model := &fakeClassifier{label: 1, probability: 0.82}
	predictor, err := NewPredictor(model, ModelInfo{Type: "fake"})
	require.NoError(t, err)

	vector, err := Encoder{DeriveTotalCharges: true}.Encode(scenarioRecord())
	require.NoError(t, err)

	result, err := predictor.Predict(context.Background(), vector)
	require.NoError(t, err)
	assert.Equal(t, PredictionResult{Label: 1, Probability: 0.82}, result)
	assert.Equal(t, 1, model.calls)
	assert.Equal(t, vector.Slice(), model.lastInput)
}

func TestPredictorInferenceErrors(t *testing.T) {
	tests := []struct {
		name  string
		model *fakeClassifier
	}{
		{"predict fails", &fakeClassifier{err: errors.New("shape mismatch")}},
		{"probability fails", &fakeClassifier{probErr: errors.New("boom")}},
		{"label not binary", &fakeClassifier{label: 2, probability: 0.5}},
		{"probability above one", &fakeClassifier{label: 1, probability: 1.2}},
		{"probability negative", &fakeClassifier{probability: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor, err := NewPredictor(tt.model, ModelInfo{})
			require.NoError(t, err)

			_, err = predictor.Predict(context.Background(), FeatureVector{})
			require.Error(t, err)
			assert.True(t, IsInferenceError(err))
			assert.Equal(t, 1, tt.model.calls, "no retries")
		})
	}
}

func TestPredictorCancelledContext(t *testing.T) {
	model := &fakeClassifier{}
	predictor, err := NewPredictor(model, ModelInfo{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = predictor.Predict(ctx, FeatureVector{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, model.calls)
}

func TestNewPredictorRequiresModel(t *testing.T) {
	_, err := NewPredictor(nil, ModelInfo{})
	assert.ErrorIs(t, err, ErrModelLoad)
}

func TestLoadPredictorFailsFast(t *testing.T) {
	_, err := LoadPredictor("")
	assert.ErrorIs(t, err, ErrModelLoad)

	_, err = LoadPredictor(filepath.Join(t.TempDir(), "churn_model.json"))
	assert.ErrorIs(t, err, ErrModelLoad)
}

func TestPredictorInfoIsCopy(t *testing.T) {
	predictor, err := NewPredictor(&fakeClassifier{}, ModelInfo{Type: "fake", FeatureNames: FeatureNames()})
	require.NoError(t, err)

	info := predictor.Info()
	info.FeatureNames[0] = "changed"
	assert.Equal(t, "gender", predictor.Info().FeatureNames[0])
}
