// cmd/lead-scorer/validate.go
package main

import (
	"fmt"

	"rfq-lead-workers/internal/common/validation"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an RFQ payload against the RFQ schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			v, err := validation.NewRFQValidator()
			if err != nil {
				return err
			}
			result, err := v.ValidateJSON(raw)
			if err != nil {
				return fmt.Errorf("parse RFQ: %w", err)
			}

			out := cmd.OutOrStdout()
			if result.Valid {
				fmt.Fprintln(out, "valid")
				return nil
			}
			for _, e := range result.Errors {
				fmt.Fprintf(out, "%s\t%s\t%s\n", e.Field, e.Code, e.Message)
			}
			return fmt.Errorf("%d validation error(s)", len(result.Errors))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to RFQ JSON file (stdin when omitted)")
	return cmd
}
