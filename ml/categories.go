package ml

// Category is an enumerated input field. The integer code of a value is its
// index in Values, which mirrors the label encoding used at training time.
type Category struct {
	Field  string   `json:"field"`
	Column int      `json:"column"`
	Values []string `json:"values"`
}

var (
	genderValues        = []string{"Female", "Male"}
	yesNoValues         = []string{"No", "Yes"}
	multipleLinesValues = []string{"No", "No phone service", "Yes"}
	internetValues      = []string{"DSL", "Fiber optic", "No"}
	serviceValues       = []string{"No", "No internet service", "Yes"}
	contractValues      = []string{"Month-to-month", "One year", "Two year"}
	paymentValues       = []string{
		"Bank transfer (automatic)",
		"Credit card (automatic)",
		"Electronic check",
		"Mailed check",
	}
)

var categories = []Category{
	{Field: "gender", Column: ColGender, Values: genderValues},
	{Field: "Partner", Column: ColPartner, Values: yesNoValues},
	{Field: "Dependents", Column: ColDependents, Values: yesNoValues},
	{Field: "PhoneService", Column: ColPhoneService, Values: yesNoValues},
	{Field: "MultipleLines", Column: ColMultipleLines, Values: multipleLinesValues},
	{Field: "InternetService", Column: ColInternetService, Values: internetValues},
	{Field: "OnlineSecurity", Column: ColOnlineSecurity, Values: serviceValues},
	{Field: "OnlineBackup", Column: ColOnlineBackup, Values: serviceValues},
	{Field: "DeviceProtection", Column: ColDeviceProtection, Values: serviceValues},
	{Field: "TechSupport", Column: ColTechSupport, Values: serviceValues},
	{Field: "StreamingTV", Column: ColStreamingTV, Values: serviceValues},
	{Field: "StreamingMovies", Column: ColStreamingMovies, Values: serviceValues},
	{Field: "Contract", Column: ColContract, Values: contractValues},
	{Field: "PaperlessBilling", Column: ColPaperlessBilling, Values: yesNoValues},
	{Field: "PaymentMethod", Column: ColPaymentMethod, Values: paymentValues},
}

// Categories returns every enumerated field in column order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{
			Field:  c.Field,
			Column: c.Column,
			Values: append([]string(nil), c.Values...),
		}
	}
	return out
}

// CategoryFor looks up an enumerated field by name.
func CategoryFor(field string) (Category, bool) {
	for _, c := range categories {
		if c.Field == field {
			return c, true
		}
	}
	return Category{}, false
}

// Code returns the integer code of value. ok is false when value is not part
// of the enumeration.
func (c Category) Code(value string) (code int, ok bool) {
	for i, v := range c.Values {
		if v == value {
			return i, true
		}
	}
	return -1, false
}

// recordValue returns the raw string the record holds for an enumerated field.
func recordValue(r CustomerRecord, column int) string {
	switch column {
	case ColGender:
		return r.Gender
	case ColPartner:
		return r.Partner
	case ColDependents:
		return r.Dependents
	case ColPhoneService:
		return r.PhoneService
	case ColMultipleLines:
		return r.MultipleLines
	case ColInternetService:
		return r.InternetService
	case ColOnlineSecurity:
		return r.OnlineSecurity
	case ColOnlineBackup:
		return r.OnlineBackup
	case ColDeviceProtection:
		return r.DeviceProtection
	case ColTechSupport:
		return r.TechSupport
	case ColStreamingTV:
		return r.StreamingTV
	case ColStreamingMovies:
		return r.StreamingMovies
	case ColContract:
		return r.Contract
	case ColPaperlessBilling:
		return r.PaperlessBilling
	case ColPaymentMethod:
		return r.PaymentMethod
	default:
		return ""
	}
}

// ValueOf returns the record's raw value for this field.
func (c Category) ValueOf(r CustomerRecord) string {
	return recordValue(r, c.Column)
}

// Assign stores value in the record field this category describes.
func (c Category) Assign(r *CustomerRecord, value string) {
	switch c.Column {
	case ColGender:
		r.Gender = value
	case ColPartner:
		r.Partner = value
	case ColDependents:
		r.Dependents = value
	case ColPhoneService:
		r.PhoneService = value
	case ColMultipleLines:
		r.MultipleLines = value
	case ColInternetService:
		r.InternetService = value
	case ColOnlineSecurity:
		r.OnlineSecurity = value
	case ColOnlineBackup:
		r.OnlineBackup = value
	case ColDeviceProtection:
		r.DeviceProtection = value
	case ColTechSupport:
		r.TechSupport = value
	case ColStreamingTV:
		r.StreamingTV = value
	case ColStreamingMovies:
		r.StreamingMovies = value
	case ColContract:
		r.Contract = value
	case ColPaperlessBilling:
		r.PaperlessBilling = value
	case ColPaymentMethod:
		r.PaymentMethod = value
	}
}
