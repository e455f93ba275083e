package http

import (
	"net/url"
	"strconv"
	"strings"

	"churnpredict/ml"
)

// Numeric form inputs. Enumerated inputs are named after their ml.Category.
const (
	fieldSeniorCitizen  = "SeniorCitizen"
	fieldTenure         = "tenure"
	fieldMonthlyCharges = "MonthlyCharges"
	fieldTotalCharges   = "TotalCharges"
)

var fieldLabels = map[string]string{
	"gender":            "Gender",
	fieldSeniorCitizen:  "Senior Citizen",
	"Partner":           "Partner",
	"Dependents":        "Dependents",
	fieldTenure:         "Tenure (months)",
	"PhoneService":      "Phone Service",
	"MultipleLines":     "Multiple Lines",
	"InternetService":   "Internet Service",
	"OnlineSecurity":    "Online Security",
	"OnlineBackup":      "Online Backup",
	"DeviceProtection":  "Device Protection",
	"TechSupport":       "Tech Support",
	"StreamingTV":       "Streaming TV",
	"StreamingMovies":   "Streaming Movies",
	"Contract":          "Contract",
	"PaperlessBilling":  "Paperless Billing",
	"PaymentMethod":     "Payment Method",
	fieldMonthlyCharges: "Monthly Charges",
	fieldTotalCharges:   "Total Charges",
}

type formSection struct {
	Title  string
	Fields []formField
}

type formField struct {
	Name    string
	Label   string
	Kind    string // select, range or number
	Options []formOption
	Value   string
	Min     string
	Max     string
	Step    string
	Error   string
}

type formOption struct {
	Value    string
	Selected bool
}

var sectionLayout = []struct {
	title  string
	fields []string
}{
	{"Customer Details", []string{"gender", fieldSeniorCitizen, "Partner", "Dependents", fieldTenure,
		"PhoneService", "MultipleLines", "InternetService", "Contract", "PaperlessBilling"}},
	{"Online Services", []string{"OnlineSecurity", "OnlineBackup", "DeviceProtection",
		"TechSupport", "StreamingTV", "StreamingMovies"}},
	{"Billing Information", []string{"PaymentMethod", fieldMonthlyCharges, fieldTotalCharges}},
}

// buildSections lays out the form for record. TotalCharges is omitted when it
// is derived from the monthly amount.
func buildSections(record ml.CustomerRecord, deriveTotal bool, verr *ml.ValidationError) []formSection {
	sections := make([]formSection, 0, len(sectionLayout))
	for _, layout := range sectionLayout {
		section := formSection{Title: layout.title}
		for _, name := range layout.fields {
			if name == fieldTotalCharges && deriveTotal {
				continue
			}
			field := buildField(name, record)
			if verr != nil {
				if fe, ok := verr.Field(name); ok {
					field.Error = fe.Message
				}
			}
			section.Fields = append(section.Fields, field)
		}
		sections = append(sections, section)
	}
	return sections
}

func buildField(name string, record ml.CustomerRecord) formField {
	field := formField{Name: name, Label: fieldLabels[name]}
	if category, ok := ml.CategoryFor(name); ok {
		field.Kind = "select"
		field.Value = category.ValueOf(record)
		for _, v := range category.Values {
			field.Options = append(field.Options, formOption{Value: v, Selected: v == field.Value})
		}
		return field
	}

	switch name {
	case fieldSeniorCitizen:
		field.Kind = "select"
		field.Value = strconv.Itoa(record.SeniorCitizen)
		for _, v := range []string{"0", "1"} {
			field.Options = append(field.Options, formOption{Value: v, Selected: v == field.Value})
		}
	case fieldTenure:
		field.Kind = "range"
		field.Value = strconv.Itoa(record.Tenure)
		field.Min = strconv.Itoa(ml.MinTenure)
		field.Max = strconv.Itoa(ml.MaxTenure)
		field.Step = "1"
	case fieldMonthlyCharges:
		field.Kind = "number"
		field.Value = strconv.FormatFloat(record.MonthlyCharges, 'f', -1, 64)
		field.Min = "0"
		field.Step = "0.01"
	case fieldTotalCharges:
		field.Kind = "number"
		field.Value = strconv.FormatFloat(record.TotalCharges, 'f', -1, 64)
		field.Min = "0"
		field.Step = "0.01"
	}
	return field
}

// parseForm reads a CustomerRecord from submitted form values. Values that do
// not parse as numbers are reported as field errors; enumerated values are
// copied as-is and checked by the encoder.
func parseForm(values url.Values, deriveTotal bool) (ml.CustomerRecord, *ml.ValidationError) {
	var record ml.CustomerRecord
	verr := &ml.ValidationError{}

	for _, category := range ml.Categories() {
		category.Assign(&record, values.Get(category.Field))
	}

	if v, ok := parseInt(values, fieldSeniorCitizen, verr); ok {
		record.SeniorCitizen = v
	}
	if v, ok := parseInt(values, fieldTenure, verr); ok {
		record.Tenure = v
	}
	if v, ok := parseFloat(values, fieldMonthlyCharges, verr); ok {
		record.MonthlyCharges = v
	}
	if !deriveTotal {
		if v, ok := parseFloat(values, fieldTotalCharges, verr); ok {
			record.TotalCharges = v
		}
	}

	if len(verr.Fields) > 0 {
		return record, verr
	}
	return record, nil
}

func parseInt(values url.Values, name string, verr *ml.ValidationError) (int, bool) {
	raw := strings.TrimSpace(values.Get(name))
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.Fields = append(verr.Fields, ml.NewFieldError(name, raw, "must be a whole number"))
		return 0, false
	}
	return v, true
}

func parseFloat(values url.Values, name string, verr *ml.ValidationError) (float64, bool) {
	raw := strings.TrimSpace(values.Get(name))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		verr.Fields = append(verr.Fields, ml.NewFieldError(name, raw, "must be a number"))
		return 0, false
	}
	return v, true
}

// mergeFieldErrors appends the field errors of err to dst, skipping fields
// dst already reports.
func mergeFieldErrors(dst *ml.ValidationError, err error) {
	verr, ok := ml.AsValidationError(err)
	if !ok {
		return
	}
	for _, fe := range verr.Fields {
		if _, dup := dst.Field(fe.Field); !dup {
			dst.Fields = append(dst.Fields, fe)
		}
	}
}
