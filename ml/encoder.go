package ml

import (
	"fmt"
	"math"
	"strconv"
)

// Encoder turns a CustomerRecord into the classifier's feature vector.
type Encoder struct {
	// DeriveTotalCharges replaces TotalCharges with MonthlyCharges * Tenure.
	DeriveTotalCharges bool
}

// Encode validates every field of record and builds the feature vector.
// All invalid fields are reported together in a *ValidationError.
func (e Encoder) Encode(record CustomerRecord) (FeatureVector, error) {
	var vector FeatureVector
	verr := &ValidationError{}

	for _, c := range categories {
		value := recordValue(record, c.Column)
		code, ok := c.Code(value)
		if !ok {
			verr.add(c.Field, value, fmt.Sprintf("%q is not one of %q", value, c.Values))
			continue
		}
		vector[c.Column] = float64(code)
	}

	if record.SeniorCitizen != 0 && record.SeniorCitizen != 1 {
		verr.add("SeniorCitizen", strconv.Itoa(record.SeniorCitizen), "must be 0 or 1")
	}
	if record.Tenure < MinTenure || record.Tenure > MaxTenure {
		verr.add("tenure", strconv.Itoa(record.Tenure),
			fmt.Sprintf("must be between %d and %d months", MinTenure, MaxTenure))
	}
	monthlyOK := checkCharge(verr, "MonthlyCharges", record.MonthlyCharges)

	total := record.TotalCharges
	if e.DeriveTotalCharges {
		total = TotalCharges(record.MonthlyCharges, record.Tenure)
		// a finite monthly amount can still overflow once multiplied by tenure
		if monthlyOK && math.IsInf(total, 0) {
			verr.add("MonthlyCharges", strconv.FormatFloat(record.MonthlyCharges, 'g', -1, 64),
				"is too large: the derived total charges are not finite")
		}
	} else {
		checkCharge(verr, "TotalCharges", total)
	}

	if len(verr.Fields) > 0 {
		return FeatureVector{}, verr
	}

	vector[ColSeniorCitizen] = float64(record.SeniorCitizen)
	vector[ColTenure] = float64(record.Tenure)
	vector[ColMonthlyCharges] = record.MonthlyCharges
	vector[ColTotalCharges] = total
	return vector, nil
}

// TotalCharges derives the lifetime charges from the monthly amount.
func TotalCharges(monthly float64, tenure int) float64 {
	return monthly * float64(tenure)
}

func checkCharge(verr *ValidationError, field string, value float64) bool {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		verr.add(field, strconv.FormatFloat(value, 'f', -1, 64), "must be a finite number")
	case value < 0:
		verr.add(field, strconv.FormatFloat(value, 'f', -1, 64), "must not be negative")
	default:
		return true
	}
	return false
}
