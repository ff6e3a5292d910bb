// cmd/lead-scorer/score.go
package main

import (
	"encoding/json"
	"fmt"

	"rfq-lead-workers/internal/common/validation"
	"rfq-lead-workers/internal/leadscoring"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		file    string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one RFQ payload and print the lead score as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			input, err := decodeRFQ(raw)
			if err != nil {
				return err
			}

			score := leadscoring.ScoreRFQ(*input)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(score)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to RFQ JSON file (stdin when omitted)")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print single-line JSON")
	return cmd
}

// decodeRFQ validates raw against the RFQ schema before decoding it.
func decodeRFQ(raw []byte) (*leadscoring.RFQInput, error) {
	v, err := validation.NewRFQValidator()
	if err != nil {
		return nil, err
	}
	result, err := v.ValidateJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("parse RFQ: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid RFQ: %s", result.Summary())
	}

	var input leadscoring.RFQInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("decode RFQ: %w", err)
	}
	return &input, nil
}
