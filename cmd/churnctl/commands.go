package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"churnpredict/config"
	"churnpredict/ml"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "churnctl",
		Short:         "Encode customer records and predict churn offline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newEncodeCmd(), newPredictCmd(), newSchemaCmd())
	return root
}

func newEncodeCmd() *cobra.Command {
	var (
		file        string
		deriveTotal bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the feature vector for a JSON customer record",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			vector, err := ml.Encoder{DeriveTotalCharges: deriveTotal}.Encode(record)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"features": ml.FeatureNames(),
				"vector":   vector,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "record file, - for stdin")
	cmd.Flags().BoolVar(&deriveTotal, "derive-total", true, "derive TotalCharges from MonthlyCharges x tenure")
	return cmd
}

func newPredictCmd() *cobra.Command {
	var (
		file        string
		modelPath   string
		deriveTotal bool
		riskTier    bool
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the churn model on a JSON customer record",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			predictor, err := ml.LoadPredictor(modelPath)
			if err != nil {
				return err
			}
			pipeline, err := ml.NewPipeline(predictor)
			if err != nil {
				return err
			}
			outcome, err := pipeline.Evaluate(cmd.Context(), record, ml.Options{
				DeriveTotalCharges: deriveTotal,
				ShowRiskTier:       riskTier,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), outcome)
		},
	}
	defaults := config.Default()
	cmd.Flags().StringVarP(&file, "file", "f", "-", "record file, - for stdin")
	cmd.Flags().StringVar(&modelPath, "model", defaults.Model.Path, "model artifact path")
	cmd.Flags().BoolVar(&deriveTotal, "derive-total", defaults.Display.DeriveTotalCharges, "derive TotalCharges from MonthlyCharges x tenure")
	cmd.Flags().BoolVar(&riskTier, "risk-tier", defaults.Display.ShowRiskTier, "include the Low/Medium/High risk tier")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the accepted values of every enumerated field",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"features":   ml.FeatureNames(),
				"categories": ml.Categories(),
			})
		},
	}
}

func readRecord(stdin io.Reader, file string) (ml.CustomerRecord, error) {
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return ml.CustomerRecord{}, err
		}
		defer f.Close()
		r = f
	}

	var record ml.CustomerRecord
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&record); err != nil {
		return ml.CustomerRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
