package ml

// RiskTier buckets a churn probability.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// Tier boundaries. Lower bounds are inclusive.
const (
	MediumRiskThreshold = 0.30
	HighRiskThreshold   = 0.60
)

// ClassifyRisk maps a probability of churn to a risk tier.
func ClassifyRisk(probability float64) RiskTier {
	switch {
	case probability < MediumRiskThreshold:
		return RiskLow
	case probability < HighRiskThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Verdict is the display outcome of a predicted label.
type Verdict string

const (
	VerdictStay  Verdict = "stay"
	VerdictChurn Verdict = "churn"
)

// VerdictFor maps a class label to a verdict. Label 1 is churn.
func VerdictFor(label int) Verdict {
	if label == 1 {
		return VerdictChurn
	}
	return VerdictStay
}
