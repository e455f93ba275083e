package ml

// FeatureCount is the number of columns the classifier was trained on.
const FeatureCount = 19

// Column indexes of the feature vector. The order is fixed by training.
const (
	ColGender = iota
	ColSeniorCitizen
	ColPartner
	ColDependents
	ColTenure
	ColPhoneService
	ColMultipleLines
	ColInternetService
	ColOnlineSecurity
	ColOnlineBackup
	ColDeviceProtection
	ColTechSupport
	ColStreamingTV
	ColStreamingMovies
	ColContract
	ColPaperlessBilling
	ColPaymentMethod
	ColMonthlyCharges
	ColTotalCharges
)

// Tenure bounds in months.
const (
	MinTenure = 0
	MaxTenure = 72
)

// CustomerRecord holds the raw values of one form submission.
type CustomerRecord struct {
	Gender           string  `json:"gender"`
	SeniorCitizen    int     `json:"senior_citizen"`
	Partner          string  `json:"partner"`
	Dependents       string  `json:"dependents"`
	Tenure           int     `json:"tenure"`
	PhoneService     string  `json:"phone_service"`
	MultipleLines    string  `json:"multiple_lines"`
	InternetService  string  `json:"internet_service"`
	OnlineSecurity   string  `json:"online_security"`
	OnlineBackup     string  `json:"online_backup"`
	DeviceProtection string  `json:"device_protection"`
	TechSupport      string  `json:"tech_support"`
	StreamingTV      string  `json:"streaming_tv"`
	StreamingMovies  string  `json:"streaming_movies"`
	Contract         string  `json:"contract"`
	PaperlessBilling string  `json:"paperless_billing"`
	PaymentMethod    string  `json:"payment_method"`
	MonthlyCharges   float64 `json:"monthly_charges"`
	TotalCharges     float64 `json:"total_charges"`
}

// FeatureVector is the encoded record in training column order.
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// FeatureNames returns the column names in vector order.
func FeatureNames() []string {
	return []string{
		"gender",
		"SeniorCitizen",
		"Partner",
		"Dependents",
		"tenure",
		"PhoneService",
		"MultipleLines",
		"InternetService",
		"OnlineSecurity",
		"OnlineBackup",
		"DeviceProtection",
		"TechSupport",
		"StreamingTV",
		"StreamingMovies",
		"Contract",
		"PaperlessBilling",
		"PaymentMethod",
		"MonthlyCharges",
		"TotalCharges",
	}
}

var recordKeys = [FeatureCount]string{
	"gender", "senior_citizen", "partner", "dependents", "tenure",
	"phone_service", "multiple_lines", "internet_service", "online_security",
	"online_backup", "device_protection", "tech_support", "streaming_tv",
	"streaming_movies", "contract", "paperless_billing", "payment_method",
	"monthly_charges", "total_charges",
}

// RecordKey 返回列名对应的 CustomerRecord JSON 键，未知列返回空串
func RecordKey(column string) string {
	for i, name := range FeatureNames() {
		if name == column {
			return recordKeys[i]
		}
	}
	return ""
}

// DefaultRecord returns the values the form starts with.
func DefaultRecord() CustomerRecord {
	return CustomerRecord{
		Gender:           "Female",
		SeniorCitizen:    0,
		Partner:          "No",
		Dependents:       "No",
		Tenure:           12,
		PhoneService:     "No",
		MultipleLines:    "No phone service",
		InternetService:  "DSL",
		OnlineSecurity:   "No internet service",
		OnlineBackup:     "No internet service",
		DeviceProtection: "No internet service",
		TechSupport:      "No internet service",
		StreamingTV:      "No internet service",
		StreamingMovies:  "No internet service",
		Contract:         "Month-to-month",
		PaperlessBilling: "No",
		PaymentMethod:    "Electronic check",
		MonthlyCharges:   45.0,
	}
}
