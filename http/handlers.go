package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"churnpredict/ml"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

// Handler serves the prediction form and the JSON API. It holds no
// per-request state; every submission is evaluated and discarded.
type Handler struct {
	pipeline *ml.Pipeline
	display  *Display
	logger   *zap.Logger
}

func NewHandler(pipeline *ml.Pipeline, display *Display, logger *zap.Logger) (*Handler, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	if display == nil {
		return nil, errors.New("display is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{pipeline: pipeline, display: display, logger: logger}, nil
}

// Register adds all routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/schema", h.handleSchema)
	mux.HandleFunc("GET /api/model", h.handleModel)
	mux.HandleFunc("POST /api/predict", h.handlePredictJSON)

	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /predict", h.handleFormSubmit)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	snap := h.display.snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"features":             ml.FeatureNames(),
		"categories":           ml.Categories(),
		"tenure":               map[string]int{"min": ml.MinTenure, "max": ml.MaxTenure},
		"derive_total_charges": snap.DeriveTotalCharges,
		"show_risk_tier":       snap.ShowRiskTier,
	})
}

func (h *Handler) handleModel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pipeline.Predictor().Info())
}

type predictResponse struct {
	ml.Outcome
	ModelVersion string `json:"model_version,omitempty"`
}

func (h *Handler) handlePredictJSON(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r.Context())

	var record ml.CustomerRecord
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	snap := h.display.snapshot()
	outcome, err := h.pipeline.Evaluate(r.Context(), record, snap.Options())
	if err != nil {
		if verr, ok := ml.AsValidationError(err); ok {
			logger.Info("rejected invalid record", zap.Int("fields", len(verr.Fields)))
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		logger.Error("prediction failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ml.ErrInference.Error()})
		return
	}

	logger.Debug("prediction served",
		zap.Int("label", outcome.Label),
		zap.Float64("probability", outcome.Probability))
	if err := writeJSON(w, http.StatusOK, predictResponse{
		Outcome:      outcome,
		ModelVersion: h.pipeline.Predictor().Info().Version,
	}); err != nil {
		logger.Error("encode prediction response", zap.Error(err))
	}
}

type formPage struct {
	Theme    string
	Sections []formSection
	Result   *resultView
	Invalid  bool
}

type resultView struct {
	Churn        bool
	Failed       bool
	Class        string
	Score        string
	RiskTier     string
	TotalCharges string
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	snap := h.display.snapshot()
	h.renderForm(w, http.StatusOK, formPage{
		Theme:    themeOf(r.URL.Query().Get("theme")),
		Sections: buildSections(ml.DefaultRecord(), snap.DeriveTotalCharges, nil),
	})
}

func (h *Handler) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	snap := h.display.snapshot()
	page := formPage{Theme: themeOf(r.PostForm.Get("theme"))}

	record, perr := parseForm(r.PostForm, snap.DeriveTotalCharges)
	if perr != nil {
		// 数字解析失败时仍然校验其余字段，一次返回全部错误
		_, encErr := ml.Encoder{DeriveTotalCharges: snap.DeriveTotalCharges}.Encode(record)
		mergeFieldErrors(perr, encErr)
		page.Sections = buildSections(record, snap.DeriveTotalCharges, perr)
		page.Invalid = true
		h.renderForm(w, http.StatusUnprocessableEntity, page)
		return
	}

	if err := pause(r.Context(), snap.ResponseDelay); err != nil {
		return
	}

	outcome, err := h.pipeline.Evaluate(r.Context(), record, snap.Options())
	switch {
	case err == nil:
		page.Sections = buildSections(record, snap.DeriveTotalCharges, nil)
		page.Result = newResultView(snap, outcome)
		h.renderForm(w, http.StatusOK, page)
	case isValidation(err):
		verr, _ := ml.AsValidationError(err)
		page.Sections = buildSections(record, snap.DeriveTotalCharges, verr)
		page.Invalid = true
		h.renderForm(w, http.StatusUnprocessableEntity, page)
	default:
		logger.Error("prediction failed", zap.Error(err))
		page.Sections = buildSections(record, snap.DeriveTotalCharges, nil)
		page.Result = &resultView{Failed: true, Class: "failed"}
		h.renderForm(w, http.StatusInternalServerError, page)
	}
}

func newResultView(snap *displaySnapshot, outcome ml.Outcome) *resultView {
	view := &resultView{
		Churn:    outcome.Verdict == ml.VerdictChurn,
		Class:    string(outcome.Verdict),
		Score:    snap.formatScore(outcome.Probability),
		RiskTier: string(outcome.RiskTier),
	}
	if snap.DeriveTotalCharges {
		view.TotalCharges = snap.formatAmount(outcome.TotalCharges)
	}
	return view
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTemplate.Execute(w, page); err != nil {
		h.logger.Error("render form", zap.Error(err))
	}
}

func (h *Handler) requestLogger(ctx context.Context) *zap.Logger {
	if id := GetRequestID(ctx); id != "" {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}

// pause waits d before inference. It exists only for perceived
// responsiveness and gives up when the request is cancelled.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isValidation(err error) bool {
	_, ok := ml.AsValidationError(err)
	return ok
}

func themeOf(v string) string {
	if v == "dark" {
		return "dark"
	}
	return "light"
}

// writeJSON encodes v before writing the header, so a value that cannot be
// encoded becomes a 500 instead of a success status with an empty body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal error"}` + "\n"))
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}
