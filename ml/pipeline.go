package ml

import (
	"context"
	"errors"
)

// Options selects between the two presentation variants.
type Options struct {
	DeriveTotalCharges bool `json:"derive_total_charges" yaml:"derive_total_charges"`
	ShowRiskTier       bool `json:"show_risk_tier" yaml:"show_risk_tier"`
}

// Outcome is what a submission renders to.
type Outcome struct {
	Label        int           `json:"label"`
	Verdict      Verdict       `json:"verdict"`
	Probability  float64       `json:"probability"`
	RiskTier     RiskTier      `json:"risk_tier,omitempty"`
	TotalCharges float64       `json:"total_charges"`
	Vector       FeatureVector `json:"vector"`
}

// Pipeline encodes a record, runs one prediction and classifies the result.
type Pipeline struct {
	predictor *Predictor
}

func NewPipeline(predictor *Predictor) (*Pipeline, error) {
	if predictor == nil {
		return nil, errors.New("predictor is required")
	}
	return &Pipeline{predictor: predictor}, nil
}

// Predictor returns the underlying predictor.
func (p *Pipeline) Predictor() *Predictor {
	return p.predictor
}

// Evaluate runs the full encode and predict cycle for one record.
func (p *Pipeline) Evaluate(ctx context.Context, record CustomerRecord, opts Options) (Outcome, error) {
	vector, err := Encoder{DeriveTotalCharges: opts.DeriveTotalCharges}.Encode(record)
	if err != nil {
		return Outcome{}, err
	}

	result, err := p.predictor.Predict(ctx, vector)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		Label:        result.Label,
		Verdict:      VerdictFor(result.Label),
		Probability:  result.Probability,
		TotalCharges: vector[ColTotalCharges],
		Vector:       vector,
	}
	if opts.ShowRiskTier {
		outcome.RiskTier = ClassifyRisk(result.Probability)
	}
	return outcome, nil
}
