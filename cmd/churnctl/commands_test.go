package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const record = `{
	"gender": "Male", "senior_citizen": 0, "partner": "Yes", "dependents": "No",
	"tenure": 12, "phone_service": "Yes", "multiple_lines": "No",
	"internet_service": "Fiber optic", "online_security": "No", "online_backup": "No",
	"device_protection": "No", "tech_support": "No", "streaming_tv": "No",
	"streaming_movies": "No", "contract": "Month-to-month", "paperless_billing": "Yes",
	"payment_method": "Electronic check", "monthly_charges": 45.0
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	out, err := run(t, record, "encode")
	require.NoError(t, err)

	var payload struct {
		Vector []float64 `json:"vector"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, []float64{1, 0, 1, 0, 12, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 2, 45.0, 540.0}, payload.Vector)
}

func TestEncodeCommandRejectsInvalidRecord(t *testing.T) {
	bad := strings.Replace(record, "Electronic check", "Cheque", 1)
	_, err := run(t, bad, "encode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PaymentMethod")
}

func TestPredictCommand(t *testing.T) {
	model := filepath.Join("..", "..", "models", "churn_model.json")
	out, err := run(t, record, "predict", "--model", model)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Contains(t, []interface{}{"churn", "stay"}, payload["verdict"])
	assert.Contains(t, []interface{}{"Low", "Medium", "High"}, payload["risk_tier"])
}

func TestPredictCommandMissingModel(t *testing.T) {
	_, err := run(t, record, "predict", "--model", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Bank transfer (automatic)")
}
